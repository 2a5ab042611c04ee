package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBDriver            string
	DBHost              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBPort              string
	DBSSLMode           string
	Port                string
	AppEnv              string
	AppName             string
	AppURL              string
	AppTimezone         string
	AppAuthKey          string
	AppEncKey           string
	CSRFKey             string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
	UploadDir           string
	EmailHost           string
	EmailPort           string
	EmailUsername       string
	EmailPassword       string
	EmailFrom           string
	AdminNotifyEmail    string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBDriver:            getEnv("DB_DRIVER", "mysql"),
		DBHost:              getEnv("DB_HOST", "127.0.0.1"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBPort:              os.Getenv("DB_PORT"),
		DBSSLMode:           getEnv("DB_SSLMODE", "disable"),
		Port:                getEnv("APP_PORT", ":8080"),
		AppEnv:              getEnv("APP_ENV", "development"),
		AppName:             getEnv("APP_NAME", "TK Pelangi Ceria"),
		AppURL:              os.Getenv("APP_URL"),
		AppTimezone:         getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		AppAuthKey:          os.Getenv("APP_AUTH_KEY"),
		AppEncKey:           os.Getenv("APP_ENC_KEY"),
		CSRFKey:             os.Getenv("CSRF_KEY"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "kindergarten"),
		UploadDir:           getEnv("UPLOAD_DIR", "public/uploads"),
		EmailHost:           os.Getenv("EMAIL_HOST"),
		EmailPort:           os.Getenv("EMAIL_PORT"),
		EmailUsername:       os.Getenv("EMAIL_USERNAME"),
		EmailPassword:       os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:           os.Getenv("EMAIL_USERNAME"),
		AdminNotifyEmail:    os.Getenv("ADMIN_NOTIFY_EMAIL"),
	}

}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

var LoadENV = LoadEnv()
