// Command seed fills the configured PostgreSQL store with demo users, books, and orders.
//
// It reads the same environment and .env file as the API binary and writes through the
// command handlers, so every seeded record passes the regular business rules.
// The amounts are controlled by the constants below.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookstore/bookstore/features/command/createbook"
	"github.com/AntonStoeckl/bookstore/bookstore/features/command/createorder"
	"github.com/AntonStoeckl/bookstore/bookstore/features/command/registeruser"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell/config"
	"github.com/AntonStoeckl/bookstore/store/postgresengine"
)

const (
	// NumUsers is the number of users to register.
	NumUsers = 50

	// NumBooksPerUser is the number of books every user lists.
	NumBooksPerUser = 4

	// OrderPercentage is the share of books that get sold to a random other user.
	OrderPercentage = 30

	// RandomSeed makes runs reproducible apart from the IDs and the username suffix.
	RandomSeed = 42
)

var (
	adjectives = []string{"Silent", "Crimson", "Forgotten", "Hidden", "Last", "Broken", "Golden", "Distant", "Wild", "Hollow"}
	nouns      = []string{"River", "Kingdom", "Letter", "Garden", "Voyage", "Witness", "Crown", "Harbor", "Forest", "Promise"}
	names      = []string{"ana", "bruno", "carla", "dmytro", "elena", "farid", "greta", "hugo", "iryna", "jonas"}
	countries  = []string{"ES", "UA", "US", "DE", "FR"}
)

func main() {
	if err := run(); err != nil {
		slog.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if cfg.StoreEngine != config.EnginePostgres {
		return fmt.Errorf("seeding needs STORE_ENGINE=%s, got %q", config.EnginePostgres, cfg.StoreEngine)
	}

	ctx := context.Background()

	bookstore, closeDB, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	s := newSeeder(bookstore, rand.New(rand.NewPCG(RandomSeed, RandomSeed)), logger)

	start := time.Now()

	stats, err := s.seed(ctx, NumUsers, NumBooksPerUser, OrderPercentage)
	if err != nil {
		return err
	}

	logger.Info("seeding completed",
		slog.Int("users", stats.users),
		slog.Int("books", stats.books),
		slog.Int("orders", stats.orders),
		slog.Duration("took", time.Since(start).Round(time.Millisecond)),
	)

	return nil
}

func openStore(ctx context.Context, cfg config.AppConfig) (postgresengine.Store, func(), error) {
	db, err := config.PostgresSQLX(ctx, cfg.PostgresDSN)
	if err != nil {
		return postgresengine.Store{}, nil, err
	}

	closeDB := func() { _ = db.Close() }

	bookstore, err := postgresengine.NewStoreFromSQLX(db, postgresengine.WithSchemaName(cfg.PostgresSchema))
	if err != nil {
		closeDB()
		return postgresengine.Store{}, nil, err
	}

	if err = bookstore.Migrate(ctx); err != nil {
		closeDB()
		return postgresengine.Store{}, nil, err
	}

	return bookstore, closeDB, nil
}

// Store is everything the three seeding command handlers need.
type Store interface {
	registeruser.Store
	createbook.Store
	createorder.Store
}

type seeder struct {
	registerUser registeruser.CommandHandler
	createBook   createbook.CommandHandler
	createOrder  createorder.CommandHandler
	rng          *rand.Rand
	clock        time.Time
	runTag       string
	logger       *slog.Logger
}

type seedStats struct {
	users  int
	books  int
	orders int
}

func newSeeder(s Store, rng *rand.Rand, logger *slog.Logger) *seeder {
	return &seeder{
		registerUser: registeruser.NewCommandHandler(s),
		createBook:   createbook.NewCommandHandler(s),
		createOrder:  createorder.NewCommandHandler(s),
		rng:          rng,
		clock:        time.Now().UTC().Add(-24 * time.Hour).Truncate(time.Second),
		runTag:       uuid.NewString()[:8],
		logger:       logger,
	}
}

func (s *seeder) seed(ctx context.Context, numUsers, booksPerUser, orderPercentage int) (seedStats, error) {
	var stats seedStats

	userIDs := make([]core.UserID, 0, numUsers)

	for i := range numUsers {
		userID := uuid.Must(uuid.NewV7())
		username := fmt.Sprintf("%s-%s-%03d", names[i%len(names)], s.runTag, i)

		if _, err := s.registerUser.Handle(ctx, registeruser.BuildCommand(userID, username, s.tick())); err != nil {
			return stats, fmt.Errorf("registering %s: %w", username, err)
		}

		userIDs = append(userIDs, userID)
		stats.users++
	}

	s.logger.Info("users registered", slog.Int("count", stats.users))

	for _, authorID := range userIDs {
		for range booksPerUser {
			bookID := uuid.Must(uuid.NewV7())
			genre := core.Genres[s.rng.IntN(len(core.Genres))]
			price := int64(100 + s.rng.IntN(4900))

			command := createbook.BuildCommand(bookID, authorID, s.bookName(), price, string(genre), s.tick())
			if _, err := s.createBook.Handle(ctx, command); err != nil {
				return stats, fmt.Errorf("creating book %s: %w", bookID, err)
			}

			stats.books++

			if len(userIDs) < 2 || s.rng.IntN(100) >= orderPercentage {
				continue
			}

			placed, err := s.order(ctx, bookID, s.otherUser(userIDs, authorID))
			if err != nil {
				return stats, err
			}

			if placed {
				stats.orders++
			}
		}
	}

	s.logger.Info("books listed", slog.Int("count", stats.books), slog.Int("sold", stats.orders))

	return stats, nil
}

func (s *seeder) order(ctx context.Context, bookID core.BookID, buyerID core.UserID) (bool, error) {
	command := createorder.BuildCommand(
		uuid.Must(uuid.NewV7()),
		bookID,
		buyerID,
		fmt.Sprintf("+34 6%08d", s.rng.IntN(100_000_000)),
		countries[s.rng.IntN(len(countries))],
		fmt.Sprintf("%d %s Street", 1+s.rng.IntN(200), nouns[s.rng.IntN(len(nouns))]),
		s.tick(),
	)

	_, err := s.createOrder.Handle(ctx, command)
	if errors.Is(err, core.ErrAlreadySold) {
		s.logger.Warn("book was sold concurrently, skipping", slog.String("book_id", bookID.String()))
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("ordering book %s: %w", bookID, err)
	}

	return true, nil
}

func (s *seeder) otherUser(userIDs []core.UserID, except core.UserID) core.UserID {
	for {
		candidate := userIDs[s.rng.IntN(len(userIDs))]
		if candidate != except {
			return candidate
		}
	}
}

func (s *seeder) bookName() string {
	return "The " + adjectives[s.rng.IntN(len(adjectives))] + " " + nouns[s.rng.IntN(len(nouns))]
}

// tick advances the seeding clock so that creation times are unique and ordered.
func (s *seeder) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}
