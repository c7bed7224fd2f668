// Утилита наполнения хранилища демонстрационными данными из data/*.json.
// Запуск: seed -import | seed -delete
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/magabrotheeeer/tour-booking-api/internal/config"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/storage/mongodb"
)

func main() {
	importFlag := flag.Bool("import", false, "импортировать данные из data/*.json")
	deleteFlag := flag.Bool("delete", false, "удалить все данные из коллекций")
	dataDir := flag.String("data", "data", "каталог с JSON файлами")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))

	if *importFlag == *deleteFlag {
		logger.Error("exactly one of -import or -delete must be set")
		os.Exit(1)
	}

	cfg := config.MustLoad()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnection.Timeout)
	defer cancel()

	storage, err := mongodb.New(ctx, cfg.MongoConnection.URI, cfg.MongoConnection.Database)
	if err != nil {
		logger.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		if err := storage.Close(context.Background()); err != nil {
			logger.Error("failed to close storage connection", sl.Err(err))
		}
	}()

	collections := []string{
		mongodb.CollectionTours,
		mongodb.CollectionUsers,
		mongodb.CollectionReviews,
	}

	if *deleteFlag {
		for _, name := range collections {
			res, err := storage.Db.Collection(name).DeleteMany(ctx, bson.M{})
			if err != nil {
				logger.Error("failed to delete collection data", slog.String("collection", name), sl.Err(err))
				os.Exit(1)
			}
			logger.Info("collection cleared", slog.String("collection", name), slog.Int64("deleted", res.DeletedCount))
		}
		return
	}

	for _, name := range collections {
		path := filepath.Join(*dataDir, name+".json")
		docs, err := readDocs(path)
		if err != nil {
			logger.Error("failed to read data file", slog.String("file", path), sl.Err(err))
			os.Exit(1)
		}
		if len(docs) == 0 {
			continue
		}
		res, err := storage.Db.Collection(name).InsertMany(ctx, docs)
		if err != nil {
			logger.Error("failed to import collection data", slog.String("collection", name), sl.Err(err))
			os.Exit(1)
		}
		logger.Info("collection imported", slog.String("collection", name), slog.Int("inserted", len(res.InsertedIDs)))
	}
}

// readDocs читает JSON массив документов в форму, пригодную для InsertMany.
func readDocs(path string) ([]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var docs []map[string]any
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	out := make([]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc)
	}
	return out, nil
}
