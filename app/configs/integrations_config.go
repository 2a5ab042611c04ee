package configs

import (
	"log"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/services"
)

// CloudinarySettings maps the CLOUDINARY_* variables.
func CloudinarySettings() services.CloudinaryConfig {
	return services.CloudinaryConfig{
		CloudName: LoadENV.CloudinaryCloudName,
		APIKey:    LoadENV.CloudinaryAPIKey,
		APISecret: LoadENV.CloudinaryAPISecret,
		Folder:    LoadENV.CloudinaryFolder,
	}
}

// NewImageUploader prefers Cloudinary and falls back to local disk under
// UPLOAD_DIR, served from /uploads.
func NewImageUploader() services.ImageUploader {
	cfg := CloudinarySettings()
	if cfg.Enabled() {
		log.Println("Image uploads go to Cloudinary.")
		return services.NewCloudinaryUploader(cfg, nil)
	}
	log.Printf("Cloudinary not configured, storing uploads in %s.", LoadENV.UploadDir)
	return services.NewLocalUploader(LoadENV.UploadDir, "/uploads")
}

func MailSettings() services.Config {
	return services.Config{
		Host:     LoadENV.EmailHost,
		Port:     LoadENV.EmailPort,
		Username: LoadENV.EmailUsername,
		Password: LoadENV.EmailPassword,
		From:     LoadENV.EmailFrom,
	}
}

// NewOrderNotifier returns nil when mail or the recipient is not configured.
func NewOrderNotifier() services.OrderNotifier {
	cfg := MailSettings()
	if !cfg.Enabled() || LoadENV.AdminNotifyEmail == "" {
		log.Println("Order e-mail notifications disabled.")
		return nil
	}
	return services.NewEmailOrderNotifier(services.NewMailer(cfg), LoadENV.AdminNotifyEmail)
}

// ReportLocation resolves APP_TIMEZONE, falling back to UTC when the name is
// unknown.
func ReportLocation() *time.Location {
	loc, err := time.LoadLocation(LoadENV.AppTimezone)
	if err != nil {
		log.Printf("ReportLocation: unknown APP_TIMEZONE %q, using UTC: %v", LoadENV.AppTimezone, err)
		return time.UTC
	}
	return loc
}
