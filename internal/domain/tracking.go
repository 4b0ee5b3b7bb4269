package domain

import "fmt"

// StepState marks where a timeline step stands relative to the route's status.
type StepState string

const (
	StepPending   StepState = "pending"
	StepCurrent   StepState = "current"
	StepCompleted StepState = "completed"
	StepIssue     StepState = "issue"
)

// TimelineStep is one entry of a route's tracking timeline.
type TimelineStep struct {
	Label       string
	Description string
	State       StepState
}

// TimelineDateLayout formats the scheduled date inside step descriptions.
const TimelineDateLayout = "Jan 2, 2006"

const cancelledDescription = "This route was cancelled. Please reschedule or contact the logistics team for assistance."

var progressByStatus = map[RouteStatus]int{
	RouteScheduled: 10,
	RouteInTransit: 65,
	RouteDelivered: 100,
	RouteDelayed:   45,
	RouteCancelled: 0,
}

// Progress maps a status to its completion percentage. Unknown statuses map to 0.
func Progress(status RouteStatus) int {
	return progressByStatus[status]
}

// Timeline derives the tracking steps of r from its current status alone.
// A cancelled route collapses to a single "Cancelled" step in the issue state.
func Timeline(r Route) []TimelineStep {
	if r.Status == RouteCancelled {
		return []TimelineStep{{
			Label:       "Cancelled",
			Description: cancelledDescription,
			State:       StepIssue,
		}}
	}

	steps := []TimelineStep{
		{
			Label:       string(RouteScheduled),
			Description: fmt.Sprintf("Departure from %s on %s", r.Origin, r.ScheduledDate.Format(TimelineDateLayout)),
			State:       StepPending,
		},
		{
			Label:       string(RouteInTransit),
			Description: fmt.Sprintf("Driver %s is en route to %s.", r.DriverName, r.Destination),
			State:       StepPending,
		},
		{
			Label:       string(RouteDelivered),
			Description: fmt.Sprintf("Estimated delivery time: %s.", r.EstimatedTime),
			State:       StepPending,
		},
	}

	switch r.Status {
	case RouteScheduled:
		steps[0].State = StepCurrent
	case RouteInTransit:
		steps[0].State = StepCompleted
		steps[1].State = StepCurrent
	case RouteDelayed:
		steps[0].State = StepCompleted
		steps[1].State = StepIssue
	case RouteDelivered:
		steps[0].State = StepCompleted
		steps[1].State = StepCompleted
		steps[2].State = StepCurrent
	}

	return steps
}

const (
	gpsLiveNote        = "Live GPS ping received."
	gpsUnavailableNote = "GPS tracking is not available for this route. Status updates rely on driver check-ins."
)

// Tracking is the read model behind the route tracking view.
type Tracking struct {
	Route    Route
	Progress int
	Timeline []TimelineStep
	GPSNote  string
}

// Track assembles the tracking view of r.
func Track(r Route) Tracking {
	note := gpsUnavailableNote
	if r.GPSAvailable {
		note = gpsLiveNote
	}
	return Tracking{
		Route:    r.Clone(),
		Progress: Progress(r.Status),
		Timeline: Timeline(r),
		GPSNote:  note,
	}
}
