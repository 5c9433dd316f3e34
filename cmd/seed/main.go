package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solvexa/helpdesk-backend/internal/adapters/primary/validation"
	"github.com/solvexa/helpdesk-backend/internal/adapters/secondary/postgres"
	"github.com/solvexa/helpdesk-backend/internal/config"
	"github.com/solvexa/helpdesk-backend/internal/core/domain"
	"github.com/solvexa/helpdesk-backend/internal/core/ports"
	"github.com/solvexa/helpdesk-backend/internal/infrastructure/logging"
)

// Default demo accounts, one per role.
var defaultUsers = []domain.UserRegistrationParams{
	{Name: "Admin User", Email: "admin@example.com", Password: "Admin@123", Role: domain.RoleAdmin},
	{Name: "Agent User", Email: "agent@example.com", Password: "Agent@123", Role: domain.RoleAgent},
	{Name: "Regular User", Email: "user@example.com", Password: "User@123", Role: domain.RoleUser},
}

var defaultCategories = []struct {
	Name        string
	Description string
}{
	{"Hardware", "Physical equipment issues"},
	{"Software", "Application and OS problems"},
	{"Network", "Connectivity and VPN issues"},
	{"Account", "Access, passwords and permissions"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      "text",
		Output:      os.Stdout,
		ServiceName: cfg.App.Name + "-seed",
		Environment: cfg.App.Environment,
	})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	voteRepo := postgres.NewVoteRepository(pool)

	users, err := seedUsers(ctx, userRepo, logger)
	if err != nil {
		logger.Error("seeding users failed", "error", err)
		os.Exit(1)
	}

	categories, err := seedCategories(ctx, categoryRepo, logger)
	if err != nil {
		logger.Error("seeding categories failed", "error", err)
		os.Exit(1)
	}

	if err := seedDemoActivity(ctx, ticketRepo, commentRepo, voteRepo, users, categories, logger); err != nil {
		logger.Error("seeding demo activity failed", "error", err)
		os.Exit(1)
	}

	logger.Info("database seeding completed")
}

func seedUsers(ctx context.Context, repo ports.UserRepository, logger *slog.Logger) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(defaultUsers))
	for _, params := range defaultUsers {
		if existing, err := repo.GetByEmail(ctx, params.Email); err == nil {
			logger.Info("user already exists, skipping", "email", params.Email)
			users = append(users, existing)
			continue
		}

		user, err := domain.NewUser(params)
		if err != nil {
			return nil, err
		}

		created, err := repo.Create(ctx, user)
		if err != nil {
			return nil, err
		}

		logger.Info("created user", "email", created.Email, "role", created.Role)
		users = append(users, created)
	}
	return users, nil
}

func seedCategories(ctx context.Context, repo ports.CategoryRepository, logger *slog.Logger) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(defaultCategories))
	for _, c := range defaultCategories {
		v := validation.NewValidator().
			Required("name", c.Name).
			MaxLength("name", c.Name, 100).
			MaxLength("description", c.Description, 500)
		if v.HasErrors() {
			return nil, v.Errors()
		}

		created, err := repo.Create(ctx, &domain.Category{
			Name:        c.Name,
			Description: c.Description,
		})
		if err != nil {
			return nil, err
		}

		logger.Info("created category", "name", created.Name)
		categories = append(categories, created)
	}
	return categories, nil
}

// seedDemoActivity creates a handful of tickets with comments and votes so
// the analytics dashboard has something to show on a fresh install.
func seedDemoActivity(
	ctx context.Context,
	ticketRepo ports.TicketRepository,
	commentRepo ports.CommentRepository,
	voteRepo ports.VoteRepository,
	users []*domain.User,
	categories []*domain.Category,
	logger *slog.Logger,
) error {
	if len(users) < 3 || len(categories) < 4 {
		return nil
	}
	admin, agent, regular := users[0], users[1], users[2]

	demoTickets := []struct {
		Subject     string
		Description string
		Priority    domain.TicketPriority
		Category    *domain.Category
	}{
		{"Laptop will not boot", "Black screen after the latest update.", domain.PriorityHigh, categories[0]},
		{"VPN keeps dropping", "Disconnects every few minutes on home wifi.", domain.PriorityMedium, categories[2]},
		{"Password reset request", "Locked out after vacation.", domain.PriorityLow, categories[3]},
	}

	for _, d := range demoTickets {
		v := validation.NewValidator().
			Required("subject", d.Subject).
			MaxLength("subject", d.Subject, 200).
			OneOf("priority", string(d.Priority), []string{
				string(domain.PriorityLow),
				string(domain.PriorityMedium),
				string(domain.PriorityHigh),
				string(domain.PriorityUrgent),
			}).
			Custom("category", d.Category != nil && d.Category.ID > 0, "Must reference a stored category")
		if v.HasErrors() {
			return v.Errors()
		}

		ticket, err := domain.NewTicket(domain.TicketParams{
			Subject:     d.Subject,
			Description: d.Description,
			Priority:    d.Priority,
			CategoryID:  d.Category.ID,
			CreatedBy:   regular.ID,
		})
		if err != nil {
			return err
		}

		created, err := ticketRepo.Create(ctx, ticket)
		if err != nil {
			return err
		}
		logger.Info("created ticket", "id", created.ID, "subject", created.Subject)

		comment, err := domain.NewComment(domain.CommentParams{
			TicketID: created.ID,
			AuthorID: agent.ID,
			Content:  "Thanks for reporting, looking into it.",
		})
		if err != nil {
			return err
		}

		savedComment, err := commentRepo.Create(ctx, comment)
		if err != nil {
			return err
		}

		if _, err := voteRepo.ToggleTicketVote(ctx, created.ID, admin.ID, domain.VoteUp); err != nil {
			return err
		}
		if _, err := voteRepo.ToggleTicketVote(ctx, created.ID, agent.ID, domain.VoteUp); err != nil {
			return err
		}
		if _, err := voteRepo.ToggleCommentVote(ctx, savedComment.ID, regular.ID, domain.VoteUp); err != nil {
			return err
		}
	}

	return nil
}
