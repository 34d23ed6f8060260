package seed

import (
	"context"
	"fmt"
	"log/slog"

	"devswipe/internal/middleware"
	"devswipe/internal/models"
	"devswipe/internal/repository"

	"gorm.io/gorm"
)

// Summary counts what a run created.
type Summary struct {
	Users         int
	Projects      int
	CollabPosts   int
	Conversations int
	Messages      int
}

// Seeder fills a database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	chat    repository.ChatRepository
}

// NewSeeder returns a Seeder writing to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
		chat:    repository.NewChatRepository(db),
	}
}

// ClearAll deletes every row the seeder can create, children first.
func (s *Seeder) ClearAll(ctx context.Context) error {
	middleware.Logger.InfoContext(ctx, "clearing existing data")
	tables := []any{
		&models.Message{},
		&models.Conversation{},
		&models.CollabPost{},
		&models.Project{},
		&models.UserProfile{},
		&models.User{},
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("clear %T: %w", m, err)
			}
		}
		return nil
	})
}

// Run seeds users, their content and conversations sized by p.
func (s *Seeder) Run(ctx context.Context, p Preset) (*Summary, error) {
	middleware.Logger.InfoContext(ctx, "seeding database", slog.String("preset", p.Name), slog.Int("users", p.Users))

	users, err := s.seedUsers(ctx, p.Users)
	if err != nil {
		return nil, err
	}
	sum := &Summary{Users: len(users)}

	if sum.Projects, err = s.seedProjects(users, p.ProjectsPerUser); err != nil {
		return nil, err
	}
	if sum.CollabPosts, err = s.seedCollabPosts(users, p.CollabsPerUser); err != nil {
		return nil, err
	}
	if sum.Conversations, sum.Messages, err = s.seedConversations(ctx, users, p.Conversations, p.MessagesPerConversation); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "seeding completed",
		slog.Int("users", sum.Users),
		slog.Int("projects", sum.Projects),
		slog.Int("collab_posts", sum.CollabPosts),
		slog.Int("conversations", sum.Conversations),
		slog.Int("messages", sum.Messages))
	return sum, nil
}

func (s *Seeder) seedUsers(ctx context.Context, n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		u, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
		if (i+1)%100 == 0 {
			middleware.Logger.InfoContext(ctx, "users created", slog.Int("count", i+1))
		}
	}
	return users, nil
}

func (s *Seeder) seedProjects(users []*models.User, perUser int) (int, error) {
	if perUser <= 0 {
		return 0, nil
	}
	var projects []*models.Project
	for _, u := range users {
		for i := s.factory.faker.Number(0, perUser); i > 0; i-- {
			projects = append(projects, s.factory.BuildProject(u))
		}
	}
	if err := s.factory.CreateProjectsBatch(projects); err != nil {
		return 0, fmt.Errorf("create projects: %w", err)
	}
	return len(projects), nil
}

func (s *Seeder) seedCollabPosts(users []*models.User, perUser int) (int, error) {
	if perUser <= 0 {
		return 0, nil
	}
	var posts []*models.CollabPost
	for _, u := range users {
		for i := s.factory.faker.Number(0, perUser); i > 0; i-- {
			posts = append(posts, s.factory.BuildCollabPost(u))
		}
	}
	if err := s.factory.CreateCollabPostsBatch(posts); err != nil {
		return 0, fmt.Errorf("create collab posts: %w", err)
	}
	return len(posts), nil
}

// seedConversations writes a thread for each of want distinct user pairs
// through the chat repository so conversation rows stay consistent.
func (s *Seeder) seedConversations(ctx context.Context, users []*models.User, want, perConv int) (int, int, error) {
	if want <= 0 || perConv <= 0 || len(users) < 2 {
		return 0, 0, nil
	}

	pairs := make([][2]int, 0, len(users)*(len(users)-1)/2)
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	s.factory.faker.Rand.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })
	if want > len(pairs) {
		want = len(pairs)
	}

	msgs := 0
	for _, pair := range pairs[:want] {
		a, b := users[pair[0]], users[pair[1]]
		for _, m := range s.factory.BuildThread(a, b, perConv) {
			if !s.factory.opts.DryRun {
				if err := s.chat.RecordMessage(ctx, m); err != nil {
					return 0, msgs, fmt.Errorf("record message: %w", err)
				}
			}
			msgs++
		}
	}
	return want, msgs, nil
}
