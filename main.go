// backend/main.go
package main

import (
	"net/http"

	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := LoadConfig()

	var store Storage
	if cfg.DatabasePath != "" {
		sqlStore, err := OpenSQLStorage(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("open database %s: %v", cfg.DatabasePath, err)
		}
		log.Infof("using sqlite storage at %s", cfg.DatabasePath)
		store = sqlStore
	} else {
		log.Info("using in-memory storage")
		store = NewMemStorage()
	}
	seedDefaults(store, cfg)

	auth := NewAuthService(store, []byte(cfg.JWTSecret))
	server := NewServer(store, auth)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.FrontendURLs,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	handler := c.Handler(requestLogger(server.routes()))

	log.Infof("portfolio backend running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}

// seedDefaults makes sure the admin credential and a starter profile exist,
// whichever storage backend is in use.
func seedDefaults(store Storage, cfg Config) {
	if _, ok := store.GetUserByUsername(cfg.AdminUsername); !ok {
		store.CreateUser(cfg.AdminUsername, cfg.AdminPassword)
		log.Infof("seeded admin user %q", cfg.AdminUsername)
	}

	if _, ok := store.GetProfile(); !ok {
		store.UpdateProfile(ProfileInput{
			Name:     strPtr("John Developer"),
			Bio:      strPtr("I craft exceptional digital experiences using modern technologies."),
			FullBio:  strPtr("With over 5 years of experience in full-stack development, I've worked with startups and established companies to bring innovative ideas to life."),
			Email:    strPtr("john@developer.com"),
			Location: strPtr("San Francisco, CA"),
		})
		log.Info("seeded default profile")
	}
}

func strPtr(s string) *string { return &s }
