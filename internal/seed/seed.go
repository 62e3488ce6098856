package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"tweetnest/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with a realistic social mesh of users,
// follows, posts, comments and likes.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rand    *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll deletes all seeded data. Order matters because of foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{
		&models.Notification{},
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
		&models.Post{},
		&models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// SeedSocialMesh creates the given number of users with posts, a follow
// graph, comments and likes.
func (s *Seeder) SeedSocialMesh(numUsers, numPosts int) error {
	log.Printf("Seeding %d users and %d posts...", numUsers, numPosts)

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return nil
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.rand.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return fmt.Errorf("creating post: %w", err)
		}
		posts = append(posts, post)
	}

	// Each user follows a handful of others.
	for _, follower := range users {
		for _, target := range s.pickUsers(users, 3+s.rand.Intn(5)) {
			if target.ID == follower.ID {
				continue
			}
			if err := s.factory.CreateFollow(follower, target); err != nil {
				// Duplicate edges from the random picker are fine.
				continue
			}
		}
	}

	// Sprinkle likes and comments over the posts.
	for _, post := range posts {
		for _, user := range s.pickUsers(users, s.rand.Intn(6)) {
			if err := s.factory.CreateLike(user, post); err != nil {
				continue
			}
		}
		for _, user := range s.pickUsers(users, s.rand.Intn(3)) {
			if _, err := s.factory.CreateComment(user, post); err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
		}
	}

	log.Printf("Seeded %d users, %d posts", len(users), len(posts))
	return nil
}

// pickUsers returns up to n distinct random users.
func (s *Seeder) pickUsers(users []*models.User, n int) []*models.User {
	if n > len(users) {
		n = len(users)
	}
	perm := s.rand.Perm(len(users))
	picked := make([]*models.User, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, users[idx])
	}
	return picked
}
