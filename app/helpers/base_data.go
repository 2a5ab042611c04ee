package helpers

import (
	"net/http"

	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/gorilla/csrf"
)

// GetBaseData fills the fields every page template needs from the request.
func GetBaseData(r *http.Request, title string) other.BasePageData {
	data := other.BasePageData{
		Title:       title,
		CurrentPath: r.URL.Path,
		CSRFToken:   csrf.Token(r),
		SchoolName:  other.SchoolName,
	}

	if user, ok := r.Context().Value(ContextKeyUser).(*models.User); ok && user != nil {
		data.IsLoggedIn = true
		data.User = &other.UserForTemplate{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		}
	}
	return data
}
