// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"errors"
	"fmt"
	"math"

	"github.com/danielhkuo/stakeshare/models"
)

var ErrUnknownMethod = errors.New("unknown scoring method")

// ValidMethod reports whether method names a scoring mode the engine implements
func ValidMethod(method string) bool {
	return method == models.MethodWeighted || method == models.MethodMean
}

// Complete reports whether every participant has voted for every other
// participant exactly once: N*(N-1) votes for N participants.
func Complete(participantCount, voteCount int) bool {
	return participantCount*(participantCount-1) == voteCount
}

// Pending builds the restricted view shown while voting is incomplete.
// Descriptions stay hidden behind SubmittedMarker until every participant
// has one, unless the caller is privileged.
func Pending(participants []models.Participant, votes []models.Vote, privileged bool) []models.PendingParticipant {
	allHaveDescriptions := true
	for _, p := range participants {
		if p.Description == "" {
			allHaveDescriptions = false
			break
		}
	}

	voted := make(map[int64]bool, len(participants))
	for _, v := range votes {
		voted[v.VoterID] = true
	}

	result := make([]models.PendingParticipant, len(participants))
	for i, p := range participants {
		var description *string
		if p.Description != "" {
			d := p.Description
			if !privileged && !allHaveDescriptions {
				d = models.SubmittedMarker
			}
			description = &d
		}

		result[i] = models.PendingParticipant{
			ID:          p.ID,
			Name:        p.Name,
			Description: description,
			Voted:       voted[p.ID],
		}
	}

	return result
}

// Compute dispatches to the scoring mode recorded on the session
func Compute(method string, participants []models.Participant, votes []models.Vote, stake float64) ([]models.Allocation, error) {
	switch method {
	case models.MethodWeighted:
		return Weighted(participants, votes, stake), nil
	case models.MethodMean:
		return Mean(participants, votes), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

// Weighted turns raw shares into a stake distribution.
//
// Each recipient's score is the average of the shares it received, weighted
// by the voters' role weight, multiplied by its own ppp weight. Scores are
// normalised against their total and scaled to the stake, then floored, so
// the shares may sum to less than the stake.
func Weighted(participants []models.Participant, votes []models.Vote, stake float64) []models.Allocation {
	byID := make(map[int64]models.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	received := receivedVotes(votes)

	scores := make([]float64, len(participants))
	var totalScore float64
	for i, p := range participants {
		var weightedSum, voterWeight float64
		for _, v := range received[p.ID] {
			voter, ok := byID[v.VoterID]
			if !ok {
				continue
			}
			weightedSum += v.Share * voter.RoleWeight
			voterWeight += voter.RoleWeight
		}

		var avg float64
		if voterWeight > 0 {
			avg = weightedSum / voterWeight
		}

		scores[i] = avg * p.PPPWeight
		totalScore += scores[i]
	}

	result := make([]models.Allocation, len(participants))
	for i, p := range participants {
		var share float64
		if totalScore > 0 {
			share = math.Floor(scores[i] / totalScore * stake)
		}
		result[i] = newAllocation(p, share, received[p.ID])
	}

	return result
}

// Mean ignores weights: a participant's share is the floor of the shares it
// received divided by the participant count.
func Mean(participants []models.Participant, votes []models.Vote) []models.Allocation {
	received := receivedVotes(votes)
	n := float64(len(participants))

	result := make([]models.Allocation, len(participants))
	for i, p := range participants {
		var sum float64
		for _, v := range received[p.ID] {
			sum += v.Share
		}

		var share float64
		if n > 0 {
			share = math.Floor(sum / n)
		}
		result[i] = newAllocation(p, share, received[p.ID])
	}

	return result
}

// Unallocated is the part of the stake lost to flooring
func Unallocated(stake float64, allocations []models.Allocation) float64 {
	var total float64
	for _, a := range allocations {
		total += a.Share
	}
	return stake - total
}

// AllConfirmed reports whether every participant has confirmed the result
func AllConfirmed(participants []models.Participant) bool {
	for _, p := range participants {
		if !p.Confirmed {
			return false
		}
	}
	return true
}

// receivedVotes groups votes by recipient, keeping store order
func receivedVotes(votes []models.Vote) map[int64][]models.Vote {
	received := make(map[int64][]models.Vote)
	for _, v := range votes {
		received[v.RecipientID] = append(received[v.RecipientID], v)
	}
	return received
}

func newAllocation(p models.Participant, share float64, received []models.Vote) models.Allocation {
	reasons := []string{}
	for _, v := range received {
		if v.Reason != "" {
			reasons = append(reasons, v.Reason)
		}
	}

	return models.Allocation{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Share:       share,
		Reasons:     reasons,
	}
}
