package update

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToken_StartsUnset(t *testing.T) {
	require.False(t, NewToken().Requested())
}

func TestToken_SingleTransition(t *testing.T) {
	token := NewToken()
	require.True(t, token.Request())
	require.True(t, token.Requested())
	// second request reports the transition already happened
	require.False(t, token.Request())
	require.True(t, token.Requested())
}

func TestToken_ExactlyOneWriterWins(t *testing.T) {
	token := NewToken()
	const writers = 16

	var wg sync.WaitGroup
	wins := make(chan bool, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- token.Request()
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for w := range wins {
		if w {
			won++
		}
	}
	require.Equal(t, 1, won)
	require.True(t, token.Requested())
}
