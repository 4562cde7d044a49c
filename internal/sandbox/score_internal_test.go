package sandbox

import (
	"testing"

	"github.com/mtoivan/samplab/internal/models"
	"github.com/stretchr/testify/require"
)

func Test_gradeFor_boundaries(t *testing.T) {
	tests := []struct {
		total int
		want  models.Grade
	}{
		{total: 100, want: models.GradeExcellent},
		{total: 80, want: models.GradeExcellent},
		{total: 79, want: models.GradeGood},
		{total: 70, want: models.GradeGood},
		{total: 69, want: models.GradePass},
		{total: 60, want: models.GradePass},
		{total: 59, want: models.GradeFail},
		{total: 0, want: models.GradeFail},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, gradeFor(tt.total), "total %d", tt.total)
	}
}
