package service

import (
	"github.com/google/uuid"
	"github.com/web3_voting/model"
	"github.com/web3_voting/repository"
)

// ProjectWithVotes is a project plus its aggregated vote count.
type ProjectWithVotes struct {
	model.Project
	Votes int64 `json:"votes"`
}

type ProjectService struct {
	projects *repository.ProjectRepository
	votes    *repository.VoteRepository
}

func NewProjectService(projects *repository.ProjectRepository, votes *repository.VoteRepository) *ProjectService {
	return &ProjectService{projects: projects, votes: votes}
}

func (s *ProjectService) Create(name, description, website, image, chain string) (*model.Project, error) {
	project := &model.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Website:     website,
		Image:       image,
		Chain:       chain,
	}
	if err := s.projects.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns all projects with vote counts joined in from a single
// aggregation query.
func (s *ProjectService) List() ([]*ProjectWithVotes, error) {
	projects, err := s.projects.List()
	if err != nil {
		return nil, err
	}
	counts, err := s.votes.CountsByProject()
	if err != nil {
		return nil, err
	}
	list := make([]*ProjectWithVotes, 0, len(projects))
	for _, p := range projects {
		list = append(list, &ProjectWithVotes{Project: *p, Votes: counts[p.ID]})
	}
	return list, nil
}
