package controllers

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"Knockout/cache"
	"Knockout/engine"
	"Knockout/mailer"
	"Knockout/middlewares"
	"Knockout/models"
	"Knockout/seed"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Sim      *engine.Simulator
	Advancer *engine.Advancer
	Mailer   *mailer.ResultMailer
}

//
// ===============================
// SECURE ADMIN SEEDING
// ===============================
//

func seedAdmin(db *gorm.DB) error {
	adminEmail := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	adminPassword := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD"))

	// If environment vars aren't provided, do NOTHING.
	if adminEmail == "" || adminPassword == "" {
		log.Println("[seedAdmin] ADMIN_EMAIL or ADMIN_PASSWORD not set — skipping admin creation.")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", adminEmail).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("[seedAdmin] Creating initial admin:", adminEmail)

		admin := models.User{
			Username: strings.Split(adminEmail, "@")[0],
			Email:    adminEmail,
			Password: adminPassword,
			IsAdmin:  true,
		}
		admin.Prepare()
		admin.IsAdmin = true

		if msgs := admin.Validate(""); len(msgs) > 0 {
			log.Printf("[seedAdmin] validation failed: %+v\n", msgs)
			return nil
		}

		if _, err := admin.SaveUser(db); err != nil {
			log.Printf("[seedAdmin] failed to create admin: %v\n", err)
			return err
		}
		return nil
	}

	// If admin exists, ensure they stay admin
	if err == nil && !existing.IsAdmin {
		log.Println("[seedAdmin] Ensuring admin flag is set for:", adminEmail)
		return db.Model(&existing).Update("is_admin", true).Error
	}

	return err
}

//
// ===============================
// SERVER INITIALIZATION
// ===============================
//

func (server *Server) Initialize(DbUser, DbPassword, DbPort, DbHost, DbName string) {
	var dsn string

	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		dsn = os.Getenv("DATABASE_URL")
		if dsn != "" && !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
	} else {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			DbHost, DbUser, DbPassword, DbName, DbPort,
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	server.DB = db

	err = server.DB.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Player{},
		&models.Tournament{},
		&models.Match{},
		&models.GoalEvent{},
	)
	if err != nil {
		log.Fatalf("Cannot migrate tables: %v", err)
	}

	if err := seedAdmin(server.DB); err != nil {
		log.Printf("[seedAdmin] error: %v", err)
	}

	if os.Getenv("SEED_DEMO") == "true" {
		seed.Load(server.DB)
	}

	if err := cache.InitFromEnv(); err != nil {
		log.Printf("[cache] redis unavailable, continuing without it: %v", err)
	}

	server.WireEngine()

	server.Router = gin.Default()
	server.Router.Use(middlewares.CORSMiddleware())
	server.initializeRoutes()
}

// WireEngine builds the simulator, advancer and mailer with their explicit
// dependencies. Tests call it directly against an in-memory database.
func (server *Server) WireEngine() {
	rng := engine.NewSource()

	sim := engine.NewSimulator(rng)
	if v := os.Getenv("MAX_SUDDEN_DEATH_ROUNDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sim.MaxSuddenDeath = n
		}
	}
	server.Sim = sim

	server.Advancer = engine.NewAdvancer(&models.MatchStore{DB: server.DB}, rng)
	server.Mailer = mailer.NewFromEnv()
}

func (server *Server) Run(addr string) {
	log.Printf("Listening to port %s", addr)
	log.Fatal(server.Router.Run(addr))
}
