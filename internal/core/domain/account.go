package domain

// DeleteResult reports what an account deletion removed.
type DeleteResult struct {
	UsersDeleted       int64 `json:"users_deleted"`
	PredictionsDeleted int64 `json:"predictions_deleted"`
}
