package assessments

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsertUsesConflictUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO assessments (.+) ON CONFLICT \\(user_id\\) DO UPDATE").
		WithArgs("u1", 3.5, 3.0, 68.0, []byte(`{"Data Analysis":4}`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = (&PGRepo{DB: db}).Upsert(context.Background(), Assessment{
		UserID: "u1", Performance: 3.5, ExperienceYears: 3, AdcScore: 68,
		Competencies: map[string]float64{"Data Analysis": 4},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetDecodesCompetencies(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rows := sqlmock.NewRows([]string{"user_id", "performance", "experience_years", "adc_score", "competencies", "updated_at"}).
		AddRow("u1", 3.5, 3.0, 68.0, []byte(`{"Strategic Thinking":3}`), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM assessments").WithArgs("u1").WillReturnRows(rows)

	a, err := (&PGRepo{DB: db}).Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if a.Competencies["Strategic Thinking"] != 3 {
		t.Fatalf("unexpected competencies %v", a.Competencies)
	}
}
