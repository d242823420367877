package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"sports-trivia/internal/domain"
	"sports-trivia/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func leaderboardFixture(cacheClient domain.Cache) (*MockLeaderboardRepository, *MockTopicRepository, LeaderboardService) {
	lbRepo := new(MockLeaderboardRepository)
	topicRepo := new(MockTopicRepository)
	svc := NewLeaderboardService(lbRepo, topicRepo, cacheClient, time.Minute, 100, 500)
	return lbRepo, topicRepo, svc
}

func sampleScores() []domain.UserScore {
	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	return []domain.UserScore{
		{UserID: "user3", UserName: "Carol", Score: 900, Attempts: 4, FirstCompletedAt: base},
		{UserID: "user1", UserName: "Alice", Score: 700, Attempts: 3, FirstCompletedAt: base.Add(time.Hour)},
		{UserID: "user2", UserName: "Bob", Score: 700, Attempts: 5, FirstCompletedAt: base.Add(2 * time.Hour)},
		{UserID: "user4", UserName: "Dave", Score: 100, Attempts: 1, FirstCompletedAt: base},
	}
}

func TestGlobalLeaderboardRanksAreContiguous(t *testing.T) {
	lbRepo, _, svc := leaderboardFixture(nil)
	lbRepo.On("AggregateGlobalScores", mock.Anything, (*time.Time)(nil), 100).Return(sampleScores(), nil)

	board, err := svc.GetGlobalLeaderboard(context.Background(), domain.PeriodAllTime, 0)
	assert.NoError(t, err)
	assert.Len(t, board.Entries, 4)

	for i, entry := range board.Entries {
		assert.Equal(t, i+1, entry.Rank)
		assert.Equal(t, domain.PeriodAllTime, entry.Period)
		if i > 0 {
			assert.GreaterOrEqual(t, board.Entries[i-1].Score, entry.Score)
		}
	}
	// Equal scores keep the repository's tie-break order.
	assert.Equal(t, "user1", board.Entries[1].UserID)
	assert.Equal(t, "user2", board.Entries[2].UserID)
}

func TestGlobalLeaderboardDeterministic(t *testing.T) {
	lbRepo, _, svc := leaderboardFixture(nil)
	lbRepo.On("AggregateGlobalScores", mock.Anything, (*time.Time)(nil), 100).Return(sampleScores(), nil)

	first, err := svc.GetGlobalLeaderboard(context.Background(), domain.PeriodAllTime, 0)
	assert.NoError(t, err)
	second, err := svc.GetGlobalLeaderboard(context.Background(), domain.PeriodAllTime, 0)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGlobalLeaderboardUsesWindowStart(t *testing.T) {
	lbRepo, _, svc := leaderboardFixture(nil)
	lbRepo.On("AggregateGlobalScores", mock.Anything, mock.MatchedBy(func(since *time.Time) bool {
		return since != nil && since.Hour() == 0 && since.Minute() == 0
	}), 100).Return([]domain.UserScore{}, nil)

	board, err := svc.GetGlobalLeaderboard(context.Background(), domain.PeriodDaily, 0)
	assert.NoError(t, err)
	assert.Empty(t, board.Entries)
	lbRepo.AssertExpectations(t)
}

func TestGlobalLeaderboardCacheHitSkipsRepository(t *testing.T) {
	cacheClient := new(MockCache)
	lbRepo, _, svc := leaderboardFixture(cacheClient)

	cached := dto.LeaderboardResponse{
		Period: domain.PeriodAllTime,
		Entries: []domain.LeaderboardEntry{
			{UserID: "user9", Score: 1234, Rank: 1, Period: domain.PeriodAllTime},
		},
	}
	raw, err := json.Marshal(&cached)
	assert.NoError(t, err)
	cacheClient.On("Get", mock.Anything, mock.Anything).Return(string(raw), nil)

	board, err := svc.GetGlobalLeaderboard(context.Background(), domain.PeriodAllTime, 0)
	assert.NoError(t, err)
	assert.Equal(t, "user9", board.Entries[0].UserID)

	lbRepo.AssertNotCalled(t, "AggregateGlobalScores", mock.Anything, mock.Anything, mock.Anything)
}

func TestGlobalLeaderboardCacheMissPopulatesCache(t *testing.T) {
	cacheClient := new(MockCache)
	lbRepo, _, svc := leaderboardFixture(cacheClient)

	cacheClient.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss)
	cacheClient.On("Set", mock.Anything, mock.Anything, mock.Anything, time.Minute).Return(nil)
	lbRepo.On("AggregateGlobalScores", mock.Anything, (*time.Time)(nil), 100).Return(sampleScores(), nil)

	_, err := svc.GetGlobalLeaderboard(context.Background(), domain.PeriodAllTime, 0)
	assert.NoError(t, err)
	cacheClient.AssertExpectations(t)
}

func TestGlobalLeaderboardLimitClamped(t *testing.T) {
	lbRepo, _, svc := leaderboardFixture(nil)
	lbRepo.On("AggregateGlobalScores", mock.Anything, (*time.Time)(nil), 500).Return([]domain.UserScore{}, nil)

	_, err := svc.GetGlobalLeaderboard(context.Background(), domain.PeriodAllTime, 9999)
	assert.NoError(t, err)
	lbRepo.AssertExpectations(t)
}

func TestTopicLeaderboardUnknownTopic(t *testing.T) {
	lbRepo, topicRepo, svc := leaderboardFixture(nil)
	topicRepo.On("GetTopicByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.GetTopicLeaderboard(context.Background(), "ghost", domain.PeriodAllTime, 0)
	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeTopicNotFound, domainErr.Code)

	lbRepo.AssertNotCalled(t, "AggregateTopicScores", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTopicLeaderboard(t *testing.T) {
	lbRepo, topicRepo, svc := leaderboardFixture(nil)
	topicRepo.On("GetTopicByID", mock.Anything, "topic1").Return(&domain.Topic{ID: "topic1", Name: "Football", Slug: "football"}, nil)
	lbRepo.On("AggregateTopicScores", mock.Anything, "topic1", (*time.Time)(nil), 100).Return(sampleScores()[:2], nil)

	board, err := svc.GetTopicLeaderboard(context.Background(), "topic1", domain.PeriodAllTime, 0)
	assert.NoError(t, err)
	assert.Equal(t, "topic1", board.TopicID)
	assert.Len(t, board.Entries, 2)
	assert.Equal(t, 1, board.Entries[0].Rank)
	assert.Equal(t, 2, board.Entries[1].Rank)
}

func TestGetUserQuizRanksEmptyInput(t *testing.T) {
	lbRepo, _, svc := leaderboardFixture(nil)

	resp, err := svc.GetUserQuizRanks(context.Background(), "user1", nil)
	assert.NoError(t, err)
	assert.Empty(t, resp.Ranks)

	lbRepo.AssertNotCalled(t, "GetUserQuizRanks", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetUserQuizRanks(t *testing.T) {
	lbRepo, _, svc := leaderboardFixture(nil)
	lbRepo.On("GetUserQuizRanks", mock.Anything, "user1", []string{"q1", "q2"}).
		Return(map[string]int{"q1": 3}, nil)

	resp, err := svc.GetUserQuizRanks(context.Background(), "user1", []string{"q1", "q2"})
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"q1": 3}, resp.Ranks)
}

func TestRecordQuizResult(t *testing.T) {
	lbRepo, _, svc := leaderboardFixture(nil)
	lbRepo.On("UpsertQuizRankRow", mock.Anything, "quiz1", "user1", 450, 62.5).Return(nil)
	lbRepo.On("RefreshQuizRanks", mock.Anything, "quiz1").Return(nil)

	err := svc.RecordQuizResult(context.Background(), "quiz1", "user1", 450, 62.5)
	assert.NoError(t, err)
	lbRepo.AssertExpectations(t)
}
