// Package view holds the page view models and the pure functions that
// build them from backend data. Builders never perform I/O; every render
// decision (empty state, error panel, degraded chart) is an explicit
// value a template switches on.
package view

import (
	"fmt"
	"time"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

// State is the render state of a data-backed page.
type State int

const (
	StateLoading State = iota
	StateEmpty
	StateError
	StatePopulated
	StateLoginRequired
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	case StatePopulated:
		return "populated"
	case StateLoginRequired:
		return "login_required"
	default:
		return "unknown"
	}
}

// topCategoryLimit caps the ranked category list on the dashboard.
const topCategoryLimit = 8

// ChartSlot is one chart position on the dashboard. A slot with no Image
// renders Note instead; a failed chart never blocks its neighbours.
type ChartSlot struct {
	Title string
	Image string
	Note  string
}

// Remediation actions offered by the empty-state and error panels.
const (
	ActionLoadSampleData = "load-sample-data"
	ActionCheckHealth    = "check-health"
)

// Dashboard is the dashboard page view model.
type Dashboard struct {
	State         State
	Stats         domain.DashboardStats
	TopCategories []domain.CategoryCount
	Charts        []ChartSlot
	Message       string
	ErrorDetail   string
	Actions       []string
}

// BuildDashboard maps a successful backend response to a view model.
func BuildDashboard(data *domain.DashboardData) Dashboard {
	if data == nil || data.Stats.InvoiceCount == 0 {
		v := Dashboard{
			State:   StateEmpty,
			Actions: []string{ActionLoadSampleData, ActionCheckHealth},
		}
		if data != nil {
			v.Stats = data.Stats
			v.Message = data.Message
		}
		return v
	}

	return Dashboard{
		State:         StatePopulated,
		Stats:         data.Stats,
		TopCategories: domain.TopCategories(data.Stats.CategoryFrequencies, topCategoryLimit),
		Charts: []ChartSlot{
			chartSlot("Sales by Item", data.Charts.ItemSales),
			chartSlot("Amount Distribution", data.Charts.AmountDistribution),
			chartSlot("Invoice Types", data.Charts.PieChart),
		},
		Message: data.Message,
	}
}

// DashboardError builds the error-panel view for a failed dashboard load.
func DashboardError(err error) Dashboard {
	return Dashboard{
		State:       StateError,
		ErrorDetail: err.Error(),
		Actions:     []string{ActionCheckHealth},
	}
}

func chartSlot(title string, image *string) ChartSlot {
	slot := ChartSlot{Title: title}
	if image == nil || *image == "" {
		slot.Note = fmt.Sprintf("%s chart is not available for this dataset", title)
		return slot
	}
	slot.Image = *image
	return slot
}

// joinDateFormat matches the profile page's human-readable date.
const joinDateFormat = "January 2, 2006"

// Profile is the profile page view model.
type Profile struct {
	State           State
	Name            string
	Email           string
	JoinDate        string
	PredictionCount int64
	Message         string
}

// BuildProfile maps a profile response to a view model. A logical failure
// renders a fixed message rather than the server's internals.
func BuildProfile(success bool, user *domain.SessionRecord, predictionCount int64) Profile {
	if !success || user == nil {
		return Profile{
			State:   StateError,
			Message: "Unable to load profile",
		}
	}
	return Profile{
		State:           StatePopulated,
		Name:            user.Name,
		Email:           user.Email,
		JoinDate:        formatJoinDate(user.CreatedAt),
		PredictionCount: predictionCount,
	}
}

// LoginRequired is the view for a guarded page reached without a session.
func LoginRequired() Profile {
	return Profile{
		State:   StateLoginRequired,
		Message: "Please log in to view this page",
	}
}

func formatJoinDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(joinDateFormat)
}
