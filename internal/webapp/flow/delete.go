package flow

import (
	"context"
	"fmt"

	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/webapp/apiclient"
	"github.com/salesai/dashboard-system/internal/webapp/session"
	"github.com/salesai/dashboard-system/pkg/logger"
)

// SignupPath is where a deleted account lands.
const SignupPath = "/signup"

// DeleteAPI is the slice of the backend client the deleter uses.
type DeleteAPI interface {
	DeleteAccount(ctx context.Context, userID string) (*apiclient.DeleteAccountResponse, error)
}

// AccountDeleter runs the destructive account-deletion flow.
type AccountDeleter struct {
	api      DeleteAPI
	sessions session.Store
}

func NewAccountDeleter(api DeleteAPI, sessions session.Store) *AccountDeleter {
	return &AccountDeleter{api: api, sessions: sessions}
}

// Delete removes the session user's account. confirmed must already be
// true; the confirmation is collected before this call and an unconfirmed
// request never reaches the backend. On success the session record is
// cleared and the flow navigates to signup. On failure the session is left
// untouched.
func (d *AccountDeleter) Delete(ctx context.Context, sid string, record *domain.SessionRecord, confirmed bool) Outcome {
	if record == nil {
		return Outcome{LoginRequired: true}
	}
	if !confirmed {
		return Outcome{Message: "Account deletion requires confirmation"}
	}

	resp, err := d.api.DeleteAccount(ctx, record.ID)
	if err != nil {
		log := logger.Get()
		log.Error().Err(err).Str("user_id", record.ID).Msg("account deletion request failed")
		return Outcome{Message: "Account deletion failed. Please try again."}
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "Account deletion failed"
		}
		return Outcome{Message: msg}
	}

	if err := d.sessions.Clear(ctx, sid); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Msg("clearing session after account deletion failed")
	}

	return Outcome{
		Redirect: SignupPath,
		Message:  fmt.Sprintf("Account deleted along with %d predictions", resp.PredictionsDeleted),
	}
}
