package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dompet/internal/matching"
)

func TestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		params    matching.CreateParams
		setupMock func(m *matching.MockRepository)
		wantErr   error
	}{
		{
			name:   "Success",
			params: matching.CreateParams{Pattern: " gofood ", Description: "GoFood", Category: "food"},
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().
					CreateRule(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *matching.Rule) error {
						assert.Equal(t, "gofood", r.Pattern)
						r.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name:    "EmptyPattern",
			params:  matching.CreateParams{Pattern: "  ", Description: "x"},
			wantErr: matching.ErrEmptyPattern,
		},
		{
			name:    "NothingToRewrite",
			params:  matching.CreateParams{Pattern: "pln"},
			wantErr: matching.ErrEmptyRule,
		},
		{
			name:    "UnknownCategory",
			params:  matching.CreateParams{Pattern: "pln", Category: "crypto"},
			wantErr: matching.ErrUnknownCategory,
		},
		{
			name:   "RepositoryError",
			params: matching.CreateParams{Pattern: "pln", Category: "bills"},
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().CreateRule(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			r, err := matching.NewService(repo).Create(context.Background(), tt.params)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, r)
			case tt.name == "RepositoryError":
				require.Error(t, err)
			default:
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, r.ID)
			}
		})
	}
}

func TestService_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().ListRules(gomock.Any()).Return([]*matching.Rule{
		{Pattern: "pln", Category: "bills"},
	}, nil)

	set, err := matching.NewService(repo).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())

	repo.EXPECT().ListRules(gomock.Any()).Return(nil, errors.New("db down"))

	_, err = matching.NewService(repo).Load(context.Background())
	require.Error(t, err)
}
