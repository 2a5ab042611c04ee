package other

import (
	"github.com/Rakhulsr/go-kindergarten/app/models"
)

type UserForTemplate struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type BasePageData struct {
	Title       string
	IsLoggedIn  bool
	User        *UserForTemplate
	CSRFToken   string
	CurrentPath string
	IsAdminPage bool
	SchoolName  string
}

type MarketingPageData struct {
	BasePageData
	Categories []models.Category
	Featured   []models.Product
}

// SchoolName is shown in page titles and the site header; main overrides it
// from APP_NAME.
var SchoolName = "TK Pelangi Ceria"
