package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM comments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM items")
	db.Exec("DELETE FROM requests")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	items := repository.NewItemRepository(db)
	bookings := repository.NewBookingRepository(db)
	requests := repository.NewRequestRepository(db)
	comments := repository.NewCommentRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")
	owner := &domain.User{Name: "Anna", Email: "anna@example.com"}
	booker := &domain.User{Name: "Boris", Email: "boris@example.com"}
	requestor := &domain.User{Name: "Clara", Email: "clara@example.com"}
	for _, u := range []*domain.User{owner, booker, requestor} {
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("user seed failed:", err)
		}
	}

	// ================== REQUESTS ==================
	log.Println("Creating item requests...")
	drillRequest := &domain.ItemRequest{
		Description: "Need a cordless drill for the weekend",
		RequestorID: requestor.ID,
		Created:     time.Now().Add(-72 * time.Hour),
	}
	if err := requests.Create(ctx, drillRequest); err != nil {
		log.Fatal("request seed failed:", err)
	}

	// ================== ITEMS ==================
	log.Println("Creating items...")
	available := true
	unavailable := false
	drill := &domain.Item{
		Name:        "Cordless drill",
		Description: "18V drill with two batteries",
		Available:   &available,
		OwnerID:     owner.ID,
		RequestID:   &drillRequest.ID,
	}
	ladder := &domain.Item{
		Name:        "Step ladder",
		Description: "3m aluminium step ladder",
		Available:   &available,
		OwnerID:     owner.ID,
	}
	sander := &domain.Item{
		Name:        "Belt sander",
		Description: "Currently under repair",
		Available:   &unavailable,
		OwnerID:     owner.ID,
	}
	for _, it := range []*domain.Item{drill, ladder, sander} {
		if err := items.Create(ctx, it); err != nil {
			log.Fatal("item seed failed:", err)
		}
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")
	now := time.Now()
	seedBookings := []*domain.Booking{
		{
			Start:    now.Add(-96 * time.Hour),
			End:      now.Add(-72 * time.Hour),
			Status:   domain.BookingApproved,
			ItemID:   drill.ID,
			BookerID: booker.ID,
		},
		{
			Start:    now.Add(-2 * time.Hour),
			End:      now.Add(2 * time.Hour),
			Status:   domain.BookingApproved,
			ItemID:   ladder.ID,
			BookerID: booker.ID,
		},
		{
			Start:    now.Add(48 * time.Hour),
			End:      now.Add(72 * time.Hour),
			Status:   domain.BookingWaiting,
			ItemID:   drill.ID,
			BookerID: requestor.ID,
		},
		{
			Start:    now.Add(24 * time.Hour),
			End:      now.Add(36 * time.Hour),
			Status:   domain.BookingRejected,
			ItemID:   ladder.ID,
			BookerID: requestor.ID,
		},
	}
	for _, b := range seedBookings {
		if err := bookings.Create(ctx, b); err != nil {
			log.Fatal("booking seed failed:", err)
		}
	}

	// ================== COMMENTS ==================
	log.Println("Creating comments...")
	comment := &domain.Comment{
		Text:     "Great drill, batteries lasted the whole weekend",
		ItemID:   drill.ID,
		AuthorID: booker.ID,
		Created:  now.Add(-70 * time.Hour),
	}
	if err := comments.Create(ctx, comment); err != nil {
		log.Fatal("comment seed failed:", err)
	}

	log.Println("Seed completed!")
	for _, u := range []*domain.User{owner, booker, requestor} {
		log.Println(fmt.Sprintf("User %s: X-Sharer-User-Id: %d", u.Name, u.ID))
	}
}
