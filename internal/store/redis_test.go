package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/finnb0y/virtualchips/internal/state"
)

type RedisStoreTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	store  Store
}

func (s *RedisStoreTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st, err := NewRedis(&RedisConfig{Client: s.client, TournamentID: "tourney"})
	s.Require().NoError(err)
	s.store = st
}

func (s *RedisStoreTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisStoreTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}

func (s *RedisStoreTestSuite) TestLoadWithoutSnapshot() {
	_, err := s.store.Load(context.Background())
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *RedisStoreTestSuite) TestSaveAndLoadRoundTrip() {
	snap := snapshotFixture()
	s.Require().NoError(s.store.Save(context.Background(), snap))

	loaded, err := s.store.Load(context.Background())
	s.Require().NoError(err)
	s.Equal(snap.Tournament.ID, loaded.Tournament.ID)
	s.Equal(snap.Players["a"].Balance, loaded.Players["a"].Balance)
	s.Equal(snap.Tables["tbl"].Pot, loaded.Tables["tbl"].Pot)
	s.NotNil(loaded.Tables["tbl"].PlayersActed, "acted set restored even when empty")
}

func (s *RedisStoreTestSuite) TestSaveOverwrites() {
	snap := snapshotFixture()
	s.Require().NoError(s.store.Save(context.Background(), snap))

	snap.Players["a"].Balance = 1
	s.Require().NoError(s.store.Save(context.Background(), snap))

	loaded, err := s.store.Load(context.Background())
	s.Require().NoError(err)
	s.Equal(1, loaded.Players["a"].Balance)
}

func (s *RedisStoreTestSuite) TestConfigValidation() {
	_, err := NewRedis(nil)
	s.Error(err)
	_, err = NewRedis(&RedisConfig{Client: s.client})
	s.Error(err)
}

func snapshotFixture() *state.State {
	s := state.NewState(&state.Tournament{
		ID: "tourney",
		Config: state.TournamentConfig{
			StartingStack:  10000,
			BlindStructure: []state.BlindLevel{{SmallBlind: 25, BigBlind: 50}},
		},
	})
	s.Players["a"] = &state.Player{ID: "a", TableID: "tbl", SeatNumber: 2, Balance: 9950, Status: state.StatusActive}
	s.Tables["tbl"] = &state.TableState{ID: "tbl", TournamentID: "tourney", Pot: 75, HandInProgress: true}
	return s
}
