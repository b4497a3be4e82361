package services

import (
	"net/url"

	"github.com/damianut/public-InterSynergy/internal/models"
	"github.com/damianut/public-InterSynergy/internal/validation"
	"github.com/google/uuid"
)

// RestService backs the read-only query API. The query carries exactly
// one key, "user": an empty value lists every account, a UUID selects by
// id and anything validating as an e-mail selects by address.
type RestService struct {
	flow FlowContext
}

func NewRestService(flow FlowContext) *RestService {
	return &RestService{flow: flow}
}

// QueryUsers resolves a /rest query. ok is false for a malformed query,
// an identifier that is neither a UUID nor an e-mail, a lookup error or
// an identifier matching no account.
func (s *RestService) QueryUsers(query url.Values) ([]models.User, bool) {
	if len(query) != 1 || !query.Has("user") {
		return nil, false
	}

	identifier := query.Get("user")
	if identifier == "" {
		users, err := s.flow.Users.GetAll()
		if err != nil {
			return nil, false
		}
		return users, true
	}

	var (
		user *models.User
		err  error
	)
	if id, parseErr := uuid.Parse(identifier); parseErr == nil {
		user, err = s.flow.Users.GetByID(id)
	} else if res := validation.Email(identifier); res.OK {
		user, err = s.flow.Users.GetByEmail(identifier)
	} else {
		return nil, false
	}
	if err != nil || user == nil {
		return nil, false
	}
	return []models.User{*user}, true
}
