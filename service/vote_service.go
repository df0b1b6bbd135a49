package service

import (
	"errors"
	"strings"

	"github.com/web3_voting/model"
	"github.com/web3_voting/repository"
)

// ErrSignatureMismatch means the signature is well-formed but recovers to a
// different address than the one claimed.
var ErrSignatureMismatch = errors.New("signature verification failed")

// VoteResult reports whether the vote was newly recorded or had already been
// recorded by an earlier submission.
type VoteResult struct {
	Already bool
}

type VoteService struct {
	nonces *NonceService
	votes  *repository.VoteRepository
}

func NewVoteService(nonces *NonceService, votes *repository.VoteRepository) *VoteService {
	return &VoteService{nonces: nonces, votes: votes}
}

// CastVote runs one vote attempt: nonce check, signature recovery, duplicate
// check, then record-and-consume.
//
// The vote row is written before the nonce is consumed. A crash between the
// two leaves a recorded vote with a live nonce, which at worst allows a
// harmless resubmit caught by the duplicate check; the reverse order could
// burn a nonce without recording anything.
//
// A duplicate submission is acknowledged without consuming the nonce. That
// matches the original protocol exactly, even though it lets an address keep
// an unused nonce alive by re-voting for a project it already voted on.
func (s *VoteService) CastVote(projectID, address, signature, nonceValue string) (*VoteResult, error) {
	addr := strings.ToLower(address)

	nonce, err := s.nonces.ValidateAndPeek(addr, nonceValue)
	if err != nil {
		return nil, err
	}

	// The message is rebuilt from the submitted fields so the signed content
	// is exactly what is being authorized.
	recovered, err := RecoverAddress(VoteMessage(projectID, nonceValue), signature)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(recovered.Hex(), addr) {
		return nil, ErrSignatureMismatch
	}

	voted, err := s.votes.HasVoted(projectID, addr)
	if err != nil {
		return nil, err
	}
	if voted {
		return &VoteResult{Already: true}, nil
	}

	vote := &model.Vote{
		ProjectID: projectID,
		Address:   addr,
		Signature: signature,
		Nonce:     nonceValue,
	}
	if err := s.votes.Create(vote); err != nil {
		if errors.Is(err, repository.ErrAlreadyVoted) {
			return &VoteResult{Already: true}, nil
		}
		return nil, err
	}

	if err := s.nonces.Consume(nonce.ID); err != nil {
		return nil, err
	}
	return &VoteResult{}, nil
}

func (s *VoteService) CountForProject(projectID string) (int64, error) {
	return s.votes.CountForProject(projectID)
}
