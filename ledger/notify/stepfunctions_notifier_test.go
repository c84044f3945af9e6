package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/circulation-ledger-go/ledger/notify"
)

type startExecutionSpy struct {
	inputs []*sfn.StartExecutionInput
	err    error
}

func (s *startExecutionSpy) StartExecution(
	_ context.Context,
	params *sfn.StartExecutionInput,
	_ ...func(*sfn.Options),
) (*sfn.StartExecutionOutput, error) {

	s.inputs = append(s.inputs, params)

	if s.err != nil {
		return nil, s.err
	}

	return &sfn.StartExecutionOutput{}, nil
}

func Test_NotifyPromotion_StartsOneExecutionPerPromotion(t *testing.T) {
	// arrange
	spy := &startExecutionSpy{}
	notifier := notify.NewStepFunctionsNotifier(spy, "arn:aws:states:eu-central-1:000000000000:stateMachine:promotions")

	promotion := notify.Promotion{
		ReservationID: "res-1",
		ItemID:        "item-1",
		HolderID:      "holder-a",
		PromotedAt:    time.Now(),
	}

	// act
	err := notifier.NotifyPromotion(context.Background(), promotion)

	// assert
	assert.NoError(t, err)
	require.Len(t, spy.inputs, 1)
	assert.Equal(t, "arn:aws:states:eu-central-1:000000000000:stateMachine:promotions", *spy.inputs[0].StateMachineArn)
	assert.Equal(t, "res-1", *spy.inputs[0].Name)
	assert.Contains(t, *spy.inputs[0].Input, `"ReservationID":"res-1"`)
	assert.Contains(t, *spy.inputs[0].Input, `"HolderID":"holder-a"`)
}

func Test_NotifyPromotion_PropagatesClientErrors(t *testing.T) {
	// arrange
	clientErr := errors.New("throttled")
	spy := &startExecutionSpy{err: clientErr}
	notifier := notify.NewStepFunctionsNotifier(spy, "arn:aws:states:eu-central-1:000000000000:stateMachine:promotions")

	// act
	err := notifier.NotifyPromotion(context.Background(), notify.Promotion{ReservationID: "res-1"})

	// assert
	assert.ErrorIs(t, err, clientErr)
}
