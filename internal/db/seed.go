package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedTestData resets the database and populates it with demo users,
// likes and the matches derived from mutual pairs.
//
// Behavior:
//  1. Clears existing data in users, likes, matches and reels.
//  2. Creates 20 users (10 male, 10 female) with hashed passwords and
//     gender preferences pointing at the opposite gender.
//  3. Generates random likes with ~70% probability, guaranteeing a
//     reciprocal like (and match row) for every 3rd pair.
func SeedTestData(database *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, table := range []string{"reels", "matches", "likes", "users"} {
		if err := database.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	users := make([]User, 0, 20)
	for i := 1; i <= 20; i++ {
		gender, wants := "male", "female"
		if i > 10 {
			gender, wants = "female", "male"
		}

		user := User{
			ID:           fmt.Sprintf("00000000-0000-0000-0000-%012d", i),
			FullName:     fmt.Sprintf("Demo User %d", i),
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Gender:       gender,
			Birthdate:    fmt.Sprintf("199%d-0%d-15", i%10, i%9+1),
			Bio:          "Here for the demo data.",
			Preferences: datatypes.NewJSONType(Preferences{
				AgeRange:         AgeRange{Min: 25, Max: 35},
				Distance:         50,
				GenderPreference: []string{wants},
			}),
		}
		if err := database.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Println("Seeded 20 users.")

	counter := 0
	for _, actor := range users {
		for j := 0; j < 8; j++ {
			target := users[r.Intn(len(users))]
			if target.ID == actor.ID || target.Gender == actor.Gender {
				continue
			}

			// like probability 70%, every 3rd pair forced mutual
			liked := r.Intn(100) < 70
			if counter%3 == 0 {
				liked = true
				recip := Like{FromUserID: target.ID, ToUserID: actor.ID}
				database.Clauses(clause.OnConflict{DoNothing: true}).Create(&recip)

				a, b := actor.ID, target.ID
				if b < a {
					a, b = b, a
				}
				match := Match{UserA: a, UserB: b, IsActive: true}
				database.Clauses(clause.OnConflict{DoNothing: true}).Create(&match)
			}

			if liked {
				like := Like{FromUserID: actor.ID, ToUserID: target.ID}
				if err := database.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
					return fmt.Errorf("failed to seed like: %w", err)
				}
			}
			counter++
		}
	}

	return nil
}

// SeedMinimalTestData loads the small fixed dataset used by tests.
//
// Dataset:
//   - alice (female, wants male), bob (male, wants female),
//     carol (female, wants male), dave (male, no preference set)
//   - Likes: alice→bob, bob→alice (mutual), carol→bob (one-way)
//   - Matches: (alice,bob) active
func SeedMinimalTestData(database *gorm.DB) error {
	for _, table := range []string{"reels", "matches", "likes", "users"} {
		if err := database.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}

	users := []User{
		{ID: "alice", Username: "alice", Email: "alice@test.com", FullName: "Alice", PasswordHash: "x", Gender: "female",
			Preferences: datatypes.NewJSONType(Preferences{GenderPreference: []string{"male"}})},
		{ID: "bob", Username: "bob", Email: "bob@test.com", FullName: "Bob", PasswordHash: "x", Gender: "male",
			Preferences: datatypes.NewJSONType(Preferences{GenderPreference: []string{"female"}})},
		{ID: "carol", Username: "carol", Email: "carol@test.com", FullName: "Carol", PasswordHash: "x", Gender: "female",
			Preferences: datatypes.NewJSONType(Preferences{GenderPreference: []string{"male"}})},
		{ID: "dave", Username: "dave", Email: "dave@test.com", FullName: "Dave", PasswordHash: "x", Gender: "male"},
	}
	if err := database.Create(&users).Error; err != nil {
		return err
	}

	likes := []Like{
		{FromUserID: "alice", ToUserID: "bob"},
		{FromUserID: "bob", ToUserID: "alice"},
		{FromUserID: "carol", ToUserID: "bob"},
	}
	if err := database.Create(&likes).Error; err != nil {
		return err
	}

	match := Match{UserA: "alice", UserB: "bob", IsActive: true}
	return database.Create(&match).Error
}
