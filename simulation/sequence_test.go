// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package simulation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEach_VisitsItemsInOrderAndStopsAtFirstError(t *testing.T) {
	var visited []int
	failure := errors.New("failure")
	err := Each(context.Background(), []int{10, 20, 30, 40}, func(_ context.Context, i int, item int) error {
		visited = append(visited, item)
		if i == 2 {
			return failure
		}
		return nil
	})
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, []int{10, 20, 30}, visited)
}

func TestEach_StopsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Each(ctx, []string{"a", "b"}, func(context.Context, int, string) error {
		calls++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestMapLimit_KeepsInputOrder(t *testing.T) {
	items := []int{5, 4, 3, 2, 1}
	results, err := MapLimit(context.Background(), items, 0, func(_ context.Context, item int) (int, error) {
		// later items finish first
		time.Sleep(time.Duration(item) * time.Millisecond)
		return item * item, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{25, 16, 9, 4, 1}, results)
}

func TestMapLimit_NeverExceedsLimit(t *testing.T) {
	for _, limit := range []int{1, 3} {
		var inFlight, peak atomic.Int32
		_, err := MapLimit(context.Background(), make([]struct{}, 20), limit, func(context.Context, struct{}) (struct{}, error) {
			n := inFlight.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inFlight.Add(-1)
			return struct{}{}, nil
		})
		require.NoError(t, err)
		assert.LessOrEqual(t, int(peak.Load()), limit)
	}
}

func TestMapLimit_SerialRunStopsAfterFailure(t *testing.T) {
	failure := errors.New("failure")
	var calls atomic.Int32
	results, err := MapLimit(context.Background(), []int{1, 2, 3, 4}, 1, func(_ context.Context, item int) (int, error) {
		calls.Add(1)
		if item == 2 {
			return 0, failure
		}
		return item, nil
	})
	assert.ErrorIs(t, err, failure)
	assert.Nil(t, results)
	assert.Equal(t, int32(2), calls.Load())
}

func TestMapLimit_EmptyInput(t *testing.T) {
	results, err := MapLimit(context.Background(), nil, 1, func(context.Context, int) (int, error) {
		t.Fatal("unexpected call")
		return 0, nil
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}
