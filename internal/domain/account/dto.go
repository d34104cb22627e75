package account

type UpdateProfileRequest struct {
	Username  string
	FirstName string
	LastName  string
}

type AccountResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

func NewAccountResponse(a Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Username:  a.Username,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		IsStaff:   a.IsStaff,
	}
}
