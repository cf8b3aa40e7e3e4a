package loading

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorRikhard/GameArchitecture/common/stats"
)

func mockOps(mockCtrl *gomock.Controller, descriptions ...string) []*MockOperation {
	ops := make([]*MockOperation, len(descriptions))
	for i, d := range descriptions {
		ops[i] = NewMockOperation(mockCtrl)
		ops[i].EXPECT().Description().Return(d).AnyTimes()
	}
	return ops
}

func TestRunnerReportsAroundEachOperation(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	reporter := NewMockProgressReporter(mockCtrl)
	ops := mockOps(mockCtrl, "a", "b")
	gomock.InOrder(
		reporter.EXPECT().Report("a", 0.0),
		ops[0].EXPECT().Load(gomock.Any()).Return(nil),
		reporter.EXPECT().Report("a", 0.5),
		reporter.EXPECT().Report("b", 0.5),
		ops[1].EXPECT().Load(gomock.Any()).Return(nil),
		reporter.EXPECT().Report("b", 1.0),
	)

	stat := stats.DefaultStatsReceiver()
	r := NewRunner(reporter, stat)
	require.NoError(t, r.Run(context.Background(), []Operation{ops[0], ops[1]}))

	assert.EqualValues(t, 2, stat.Counter(stats.LoadingScope, stats.LoadingOperationCounter).Count())
	assert.EqualValues(t, 0, stat.Counter(stats.LoadingScope, stats.LoadingOperationFailureCounter).Count())
	assert.EqualValues(t, 100, stat.Gauge(stats.LoadingScope, stats.LoadingProgressGauge).Value())
}

func TestRunnerEmpty(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	// any Report call would fail the test
	r := NewRunner(NewMockProgressReporter(mockCtrl), stats.NilStatsReceiver())
	assert.NoError(t, r.Run(context.Background(), nil))
	assert.NoError(t, r.Run(context.Background(), []Operation{}))
}

func TestRunnerStopsAtFirstFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	reporter := NewMockProgressReporter(mockCtrl)
	ops := mockOps(mockCtrl, "a", "b")
	reporter.EXPECT().Report("a", 0.0)
	ops[0].EXPECT().Load(gomock.Any()).Return(errors.New("disk on fire"))

	stat := stats.DefaultStatsReceiver()
	err := NewRunner(reporter, stat).Run(context.Background(), []Operation{ops[0], ops[1]})
	require.Error(t, err)
	assert.Equal(t, `loading "a": disk on fire`, err.Error())
	assert.EqualValues(t, 1, stat.Counter(stats.LoadingScope, stats.LoadingOperationFailureCounter).Count())
}

func TestRunnerHonorsCancellation(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	reporter := NewMockProgressReporter(mockCtrl)
	ops := mockOps(mockCtrl, "a", "b")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		reporter.EXPECT().Report("a", 0.0),
		ops[0].EXPECT().Load(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
			cancel()
			return nil
		}),
		reporter.EXPECT().Report("a", 0.5),
	)

	err := NewRunner(reporter, stats.NilStatsReceiver()).Run(ctx, []Operation{ops[0], ops[1]})
	assert.True(t, errors.Is(err, context.Canceled), "%v", err)
}

func TestRunnerCanceledBeforeStart(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	ops := mockOps(mockCtrl, "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRunner(NewMockProgressReporter(mockCtrl), stats.NilStatsReceiver()).Run(ctx, []Operation{ops[0]})
	assert.Equal(t, context.Canceled, err)
}
