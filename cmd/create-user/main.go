package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"family_law_portal_go/config"
	"family_law_portal_go/db"
	"family_law_portal_go/middleware"
	"family_law_portal_go/models"
	"family_law_portal_go/services"

	"golang.org/x/term"
)

func main() {
	role := flag.String("role", models.RoleLawyer, "account role: client or lawyer")
	flag.Parse()

	if !models.IsValidRole(*role) {
		log.Fatalf("Unknown role %q (want client or lawyer)", *role)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
		Environment: cfg.Environment,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.User{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("=== Create New %s Account ===\n\n", strings.ToUpper((*role)[:1])+(*role)[1:])

	fmt.Print("Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	fmt.Println()

	user, err := services.Register(db.DB, name, email, string(passwordBytes), *role)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Println()
	fmt.Println("✓ User created successfully!")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Name: %s\n", user.Name)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Role: %s\n", user.Role)
	fmt.Println()
	fmt.Printf("The user can now log in at %s%s\n", strings.TrimRight(cfg.AppURL, "/"), middleware.LoginPath(user.Role))
}
