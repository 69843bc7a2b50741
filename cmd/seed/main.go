// seed inserts a test account and a handful of projects into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/classdesk/classdesk/internal/infrastructure/postgres"
	"github.com/classdesk/classdesk/internal/password"
	"github.com/jackc/pgx/v5"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password-123"
)

type projectSpec struct {
	name        string
	description string
	subject     string
	level       string
	archived    bool
}

var projects = []projectSpec{
	{"Fractions intro", "Adding and comparing fractions", "math", "grade 5", false},
	{"Photosynthesis lab", "Light and dark reaction worksheets", "biology", "grade 8", false},
	{"Essay structure", "Five-paragraph essay drills", "english", "grade 7", false},
	{"Roman empire unit", "Republic to empire timeline work", "history", "grade 9", false},
	{"Algebra basics", "Solving linear equations", "math", "grade 7", true},
	{"Weather journal", "Daily observation log", "science", "grade 3", true},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	hash, err := password.Hash(seedPassword)
	if err != nil {
		pool.Close()
		log.Fatalf("hash password: %v", err)
	}

	// Upsert test account
	var accountID string
	err = pool.QueryRow(ctx, `
		INSERT INTO accounts (email, password_hash, full_name)
		VALUES ($1, $2, 'Seed Teacher')
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id`,
		seedEmail, hash,
	).Scan(&accountID)
	if err != nil {
		pool.Close()
		log.Fatalf("upsert account: %v", err)
	}

	// Insert projects, skip any that already exist (idempotent re-runs)
	var inserted, skipped int
	for _, spec := range projects {
		status := "active"
		if spec.archived {
			status = "archived"
		}
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO projects (owner_id, name, description, subject, level, status)
			SELECT $1, $2, $3, $4, $5, $6
			WHERE NOT EXISTS (
				SELECT 1 FROM projects WHERE owner_id = $1 AND name = $2
			)
			RETURNING id`,
			accountID, spec.name, spec.description, spec.subject, spec.level, status,
		).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				skipped++
				continue
			}
			pool.Close()
			log.Fatalf("insert project %q: %v", spec.name, err)
		}
		inserted++
	}

	pool.Close()

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Account:          %s\n", seedEmail)
	fmt.Printf("  Password:         %s\n", seedPassword)
	fmt.Printf("  Account ID:       %s\n", accountID)
	fmt.Printf("  Projects created: %d  (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Printf("    curl -s -X POST localhost:8080/auth/login -d 'username=%s&password=%s'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2 — list projects with the returned token:")
	fmt.Println("    curl -s localhost:8080/projects -H \"Authorization: Bearer $TOKEN\"")
}
