package testutil

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"learning_path_backend/internal/model"
	"learning_path_backend/pkg/database"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DB 返回一个独立、已迁移的 sqlite 数据库。单连接，使并发写入在连接池处排队
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}

func SeedUser(tb testing.TB, ctx context.Context, db *gorm.DB, email string) *model.User {
	tb.Helper()
	u := &model.User{Name: "Test User", Email: email, Password: "x"}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedLearningPath(tb testing.TB, ctx context.Context, db *gorm.DB, userID uint, moduleIDs ...string) *model.LearningPath {
	tb.Helper()
	content := model.LearningPathContent{
		Title:             "Go Fundamentals",
		Description:       "From zero to services",
		Difficulty:        model.DifficultyBeginner,
		EstimatedDuration: 12,
	}
	for _, id := range moduleIDs {
		content.Modules = append(content.Modules, model.PathModule{
			ID:       id,
			Title:    "Module " + id,
			Topics:   []string{"intro"},
			Duration: 2,
		})
	}
	p := &model.LearningPath{
		UserID:            userID,
		Title:             content.Title,
		Description:       content.Description,
		Difficulty:        content.Difficulty,
		EstimatedDuration: content.EstimatedDuration,
		Content:           datatypes.NewJSONType(content),
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed learning path: %v", err)
	}
	return p
}

// Question 生成测试题目，id 与正确答案都按 JSON 原文传入
func Question(id string, correct string) model.QuizQuestion {
	return model.QuizQuestion{
		ID:            model.QuestionID(id),
		Question:      "question " + id,
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: json.RawMessage(correct),
		Explanation:   "because " + id,
	}
}

func SeedQuiz(tb testing.TB, ctx context.Context, db *gorm.DB, pathID uint, moduleID string, questions ...model.QuizQuestion) *model.Quiz {
	tb.Helper()
	q := &model.Quiz{
		LearningPathID: pathID,
		ModuleID:       moduleID,
		Questions:      datatypes.JSONSlice[model.QuizQuestion](questions),
	}
	if err := db.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed quiz: %v", err)
	}
	return q
}
