package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"campdir/config"
	"campdir/pkg/helpers"
)

// Seeds a demo admin, a publisher with a bootcamp and course, and a plain
// user with a review. Idempotent via upserts.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	adminID := seedUser(db, "Admin Account", "admin@campdir.dev", "admin", hash)
	publisherID := seedUser(db, "Devworks Publisher", "publisher@campdir.dev", "publisher", hash)
	userID := seedUser(db, "Demo User", "user@campdir.dev", "user", hash)
	fmt.Printf("seeded users (password=%s): admin=%s publisher=%s user=%s\n", password, adminID, publisherID, userID)

	var bootcampID string
	err = db.QueryRow(`
		INSERT INTO bootcamps (name, slug, description, email, website, careers,
			latitude, longitude, formatted_address, street, city, state, zipcode, country,
			photo, housing, job_assistance, job_guarantee, accept_gi, user_id)
		VALUES ('Devworks Bootcamp', 'devworks-bootcamp',
			'Devworks is a full stack JavaScript Bootcamp located in the heart of Boston.',
			'enroll@devworks.com', 'https://devworks.com',
			ARRAY['Web Development','UI/UX','Business'],
			42.3584, -71.0636, '233 Bay State Rd, Boston, MA 02215, US',
			'233 Bay State Rd', 'Boston', 'MA', '02215', 'US',
			'no-photo.jpg', true, true, false, true, $1)
		ON CONFLICT (slug) DO UPDATE SET description = EXCLUDED.description
		RETURNING id
	`, publisherID).Scan(&bootcampID)
	if err != nil {
		log.Fatalf("failed to seed bootcamp: %v", err)
	}
	fmt.Printf("seeded bootcamp: %s\n", bootcampID)

	if _, err := db.Exec(`
		INSERT INTO courses (title, description, weeks, tuition, minimum_skill,
			scholarship_available, bootcamp_id, user_id)
		SELECT 'Full Stack Web Development',
			'In this course you will learn full stack web development, first learning all about the frontend.',
			'12', 10000, 'intermediate', true, $1, $2
		WHERE NOT EXISTS (
			SELECT 1 FROM courses WHERE bootcamp_id = $1 AND title = 'Full Stack Web Development'
		)
	`, bootcampID, publisherID); err != nil {
		log.Fatalf("failed to seed course: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO reviews (title, text, rating, bootcamp_id, user_id)
		VALUES ('Learned a ton!', 'The instructors were great and the curriculum is current.', 8, $1, $2)
		ON CONFLICT (bootcamp_id, user_id) DO NOTHING
	`, bootcampID, userID); err != nil {
		log.Fatalf("failed to seed review: %v", err)
	}

	// Refresh derived aggregates over the seeded records
	if _, err := db.Exec(`
		UPDATE bootcamps b SET
			average_cost = (SELECT CEIL(AVG(tuition) / 10) * 10 FROM courses WHERE bootcamp_id = b.id),
			average_rating = (SELECT AVG(rating) FROM reviews WHERE bootcamp_id = b.id)
		WHERE b.id = $1
	`, bootcampID); err != nil {
		log.Fatalf("failed to refresh aggregates: %v", err)
	}
	fmt.Println("seeded course, review and aggregates")
}

func seedUser(db *sql.DB, name, email, role, hash string) string {
	var id string
	err := db.QueryRow(`
		INSERT INTO users (name, email, role, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role
		RETURNING id
	`, name, email, role, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}
