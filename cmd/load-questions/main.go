package main

import (
	"context"
	"encoding/csv"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"quizitup/internal/config"
	"quizitup/internal/db"
	"quizitup/internal/logger"
	"quizitup/internal/quiz"
	"quizitup/internal/store"
)

func main() {
	filePath := flag.String("file", "questions.csv", "path to questions csv")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn().Err(err).Msg("failed to load .env")
	}
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close(conn)
	if cfg.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			log.Fatal().Err(err).Msg("database migration failed")
		}
	}

	records, err := readQuestions(*filePath, cfg.DefaultQuestionSeconds)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read questions")
	}

	sessions := quiz.NewSessions(store.New(conn), cfg.MaxQuestionSeconds)
	ctx := context.Background()
	loaded := 0
	for _, record := range records {
		if _, err := sessions.SaveQuestion(ctx, record); err != nil {
			if _, ok := quiz.KindOf(err); ok {
				log.Warn().Err(err).Str("question_id", record.ID).Msg("skipping question")
				continue
			}
			log.Fatal().Err(err).Str("question_id", record.ID).Msg("failed to save question")
		}
		loaded++
	}

	log.Info().Int("loaded", loaded).Int("rows", len(records)).Msg("questions loaded")
}

// readQuestions parses question_id,text[,duration_seconds] rows after a
// header line. A blank or missing duration uses defaultSeconds.
func readQuestions(path string, defaultSeconds int) ([]quiz.Question, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var records []quiz.Question
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		id := strings.TrimSpace(row[0])
		text := strings.TrimSpace(row[1])
		if id == "" || text == "" {
			continue
		}
		seconds := defaultSeconds
		if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
			value, err := strconv.Atoi(strings.TrimSpace(row[2]))
			if err != nil {
				log.Warn().Str("question_id", id).Str("duration", row[2]).Msg("invalid duration, using default")
			} else {
				seconds = value
			}
		}
		records = append(records, quiz.Question{ID: id, Text: text, DurationSeconds: seconds})
	}
	return records, nil
}
