package request

import "roadcare/models"

// transitionEdges is the single source of truth for legal lifecycle moves.
// Every mutating entry point consults this table, so unreachable edges are
// rejected uniformly.
var transitionEdges = map[models.RequestStatus][]models.RequestStatus{
	models.StatusSubmitted:  {models.StatusAssigned, models.StatusCancelled},
	models.StatusAssigned:   {models.StatusInProgress, models.StatusCancelled},
	models.StatusInProgress: {models.StatusReached, models.StatusCancelled},
	models.StatusReached:    {models.StatusCompleted, models.StatusCancelled},
}

// stampFields maps each stage to the bson timestamp field set on entry.
// CANCELLED has no dedicated stamp.
var stampFields = map[models.RequestStatus]string{
	models.StatusAssigned:   "assigned_at",
	models.StatusInProgress: "started_at",
	models.StatusReached:    "reached_at",
	models.StatusCompleted:  "completed_at",
}

// EdgeAllowed reports whether from -> to is in the transition table.
func EdgeAllowed(from, to models.RequestStatus) bool {
	for _, next := range transitionEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StampField returns the timestamp field stamped when entering the status, or
// an empty string when the status has none.
func StampField(to models.RequestStatus) string {
	return stampFields[to]
}

func knownStatus(s models.RequestStatus) bool {
	switch s {
	case models.StatusSubmitted, models.StatusAssigned, models.StatusInProgress,
		models.StatusReached, models.StatusCompleted, models.StatusCancelled:
		return true
	}
	return false
}
