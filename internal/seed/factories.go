// Package seed provides helpers to create demo data for the DevSwipe
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"devswipe/internal/middleware"
	"devswipe/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "password123"

// Options tune how the factory builds and writes rows.
type Options struct {
	SkipBcrypt bool
	DryRun     bool
	MaxDays    int
	BatchSize  int
	// RandSeed makes generated data reproducible when non-zero.
	RandSeed int64
}

var (
	techSkills = []string{
		"Go", "Rust", "TypeScript", "React", "Swift", "Kotlin", "Python", "SQL",
		"PostgreSQL", "Redis", "Docker", "Kubernetes", "GraphQL", "Figma",
		"Machine Learning", "iOS", "Android", "DevOps", "WebSockets", "Terraform",
	}
	interests = []string{
		"open source", "hackathons", "startups", "game dev", "fintech", "edtech",
		"climate tech", "developer tools", "music tech", "health", "robotics",
	}
	universities = []string{
		"MIT", "Stanford", "UC Berkeley", "Georgia Tech", "Carnegie Mellon",
		"University of Waterloo", "ETH Zurich", "TU Munich", "Imperial College",
	}
	difficulties    = []string{"beginner", "intermediate", "advanced"}
	timeCommitments = []string{"2-4 hours/week", "5-10 hours/week", "weekends", "full-time for a month"}

	usernameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9_]+`)
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db     *gorm.DB
	opts   Options
	faker  *gofakeit.Faker
	now    time.Time
	hash   string
	nextID uint
	seq    int
}

// NewFactory creates a Factory bound to db. db may be nil in DryRun mode.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{db: db, opts: opts, faker: gofakeit.New(seed), now: time.Now().UTC(), nextID: 1000}
}

func (f *Factory) passwordHash() (string, error) {
	if f.hash != "" {
		return f.hash, nil
	}
	// The hash is computed once per run; SkipBcrypt only lowers its cost so
	// seeded accounts can still log in.
	cost := bcrypt.DefaultCost
	if f.opts.SkipBcrypt {
		cost = bcrypt.MinCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return "", err
	}
	f.hash = string(hashed)
	return f.hash, nil
}

// pastTime returns a random instant within the last MaxDays.
func (f *Factory) pastTime() time.Time {
	back := time.Duration(f.faker.Number(0, f.opts.MaxDays*24*60)) * time.Minute
	return f.now.Add(-back)
}

func (f *Factory) pick(n int, from []string) []string {
	if n > len(from) {
		n = len(from)
	}
	shuffled := append([]string(nil), from...)
	f.faker.ShuffleStrings(shuffled)
	return shuffled[:n]
}

// Username returns a unique handle that passes the username rules.
func (f *Factory) Username() string {
	f.seq++
	base := strings.ToLower(usernameUnsafe.ReplaceAllString(f.faker.Username(), ""))
	suffix := fmt.Sprintf("_%d", f.seq)
	if max := 30 - len(suffix); len(base) > max {
		base = base[:max]
	}
	if len(base) < 2 {
		base = "dev"
	}
	return base + suffix
}

// BuildUser constructs a user with a filled-in profile without saving it.
func (f *Factory) BuildUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := f.passwordHash()
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	username := f.Username()
	created := f.pastTime()
	user := &models.User{
		Email:     username + "@devswipe.test",
		Username:  username,
		Password:  hash,
		FirstName: f.faker.FirstName(),
		LastName:  f.faker.LastName(),
		CreatedAt: created,
		UpdatedAt: created,
		Profile: &models.UserProfile{
			Bio:                 f.faker.HackerPhrase(),
			Skills:              f.pick(f.faker.Number(2, 5), techSkills),
			Interests:           f.pick(f.faker.Number(1, 3), interests),
			University:          f.faker.RandomString(universities),
			ProfileImageURL:     fmt.Sprintf("https://i.pravatar.cc/300?u=%s", username),
			OnboardingCompleted: f.faker.Bool(),
			CreatedAt:           created,
			UpdatedAt:           created,
		},
	}
	for _, override := range overrides {
		override(user)
	}
	return user, nil
}

// CreateUser builds and persists a user together with its profile.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user, err := f.BuildUser(overrides...)
	if err != nil {
		return nil, err
	}
	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		user.Profile.UserID = user.ID
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildProject constructs a project idea owned by owner.
func (f *Factory) BuildProject(owner *models.User, overrides ...func(*models.Project)) *models.Project {
	created := f.pastTime()
	title := fmt.Sprintf("%s for %s", f.faker.AppName(), f.faker.RandomString(interests))
	project := &models.Project{
		Title:              title,
		PreviewDescription: f.faker.Sentence(12),
		FullDescription:    f.faker.Paragraph(2, 4, 12, "\n\n"),
		Tags:               f.pick(f.faker.Number(1, 4), techSkills),
		Difficulty:         f.faker.RandomString(difficulties),
		UserID:             owner.ID,
		CreatedAt:          created,
		UpdatedAt:          created,
	}
	if f.faker.Bool() {
		link := fmt.Sprintf("https://github.com/%s/%s", owner.Username, strings.ToLower(usernameUnsafe.ReplaceAllString(f.faker.AppName(), "-")))
		project.ExternalLink = &link
	}
	for _, override := range overrides {
		override(project)
	}
	return project
}

// BuildCollabPost constructs a collaboration post owned by owner. The team
// sizes always satisfy current <= target.
func (f *Factory) BuildCollabPost(owner *models.User, overrides ...func(*models.CollabPost)) *models.CollabPost {
	created := f.pastTime()
	target := f.faker.Number(2, 6)
	current := f.faker.Number(1, target)
	status := models.CollabStatusActive
	if current == target {
		status = models.CollabStatusFilled
	}
	post := &models.CollabPost{
		Title:           "Looking for teammates: " + f.faker.AppName(),
		Description:     f.faker.Paragraph(1, 3, 14, "\n\n"),
		NeededSkills:    f.pick(f.faker.Number(1, 3), techSkills),
		TimeCommitment:  f.faker.RandomString(timeCommitments),
		TargetTeamSize:  target,
		CurrentTeamSize: current,
		Status:          status,
		UserID:          owner.ID,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreateProjectsBatch persists projects in chunks of BatchSize.
func (f *Factory) CreateProjectsBatch(projects []*models.Project) error {
	if len(projects) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, p := range projects {
			f.nextID++
			p.ID = f.nextID
		}
		middleware.Logger.Info("[dry-run] projects batch", slog.Int("count", len(projects)))
		return nil
	}
	return f.db.CreateInBatches(projects, f.opts.BatchSize).Error
}

// CreateCollabPostsBatch persists collaboration posts in chunks of BatchSize.
func (f *Factory) CreateCollabPostsBatch(posts []*models.CollabPost) error {
	if len(posts) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		middleware.Logger.Info("[dry-run] collab posts batch", slog.Int("count", len(posts)))
		return nil
	}
	return f.db.CreateInBatches(posts, f.opts.BatchSize).Error
}

// BuildThread returns n alternating text messages between a and b in
// chronological order, ending no later than now.
func (f *Factory) BuildThread(a, b *models.User, n int) []*models.Message {
	if n <= 0 {
		return nil
	}
	at := f.pastTime()
	msgs := make([]*models.Message, 0, n)
	for i := 0; i < n; i++ {
		sender, receiver := a, b
		if i%2 == 1 {
			sender, receiver = b, a
		}
		at = at.Add(time.Duration(f.faker.Number(1, 240)) * time.Minute)
		if at.After(f.now) {
			at = f.now
		}
		msgs = append(msgs, &models.Message{
			SenderID:    sender.ID,
			ReceiverID:  receiver.ID,
			Content:     f.faker.Sentence(f.faker.Number(3, 14)),
			MessageType: models.MessageTypeText,
			CreatedAt:   at,
		})
	}
	return msgs
}
