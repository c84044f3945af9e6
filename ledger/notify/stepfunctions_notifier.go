package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
)

const stateMachineARNEnvKey = "LEDGER_PROMOTION_STATE_MACHINE_ARN"

// StartExecutionAPI is the subset of the Step Functions client used by the
// notifier, extracted so tests can substitute a fake.
type StartExecutionAPI interface {
	StartExecution(
		ctx context.Context,
		params *sfn.StartExecutionInput,
		optFns ...func(*sfn.Options),
	) (*sfn.StartExecutionOutput, error)
}

// StepFunctionsNotifier starts one state machine execution per promotion.
// The execution name is the reservation ID, so redelivery of the same
// promotion is deduplicated by Step Functions itself.
type StepFunctionsNotifier struct {
	client          StartExecutionAPI
	stateMachineARN string
}

// NewStepFunctionsNotifier creates a notifier with the provided client and
// state machine ARN.
func NewStepFunctionsNotifier(client StartExecutionAPI, stateMachineARN string) StepFunctionsNotifier {
	return StepFunctionsNotifier{
		client:          client,
		stateMachineARN: stateMachineARN,
	}
}

// NewStepFunctionsNotifierFromEnv creates a notifier with the default AWS
// config chain and the state machine ARN from LEDGER_PROMOTION_STATE_MACHINE_ARN.
func NewStepFunctionsNotifierFromEnv(ctx context.Context) (StepFunctionsNotifier, error) {
	stateMachineARN := os.Getenv(stateMachineARNEnvKey)
	if stateMachineARN == "" {
		return StepFunctionsNotifier{}, fmt.Errorf("%s is not set", stateMachineARNEnvKey)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return StepFunctionsNotifier{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewStepFunctionsNotifier(sfn.NewFromConfig(awsCfg), stateMachineARN), nil
}

// NotifyPromotion starts a state machine execution carrying the promotion as input.
func (n StepFunctionsNotifier) NotifyPromotion(ctx context.Context, promotion Promotion) error {
	input, err := json.Marshal(promotion)
	if err != nil {
		return fmt.Errorf("failed to marshal promotion: %w", err)
	}

	_, err = n.client.StartExecution(ctx, &sfn.StartExecutionInput{
		StateMachineArn: aws.String(n.stateMachineARN),
		Name:            aws.String(string(promotion.ReservationID)),
		Input:           aws.String(string(input)),
	})
	if err != nil {
		return fmt.Errorf("failed to start promotion notification execution: %w", err)
	}

	return nil
}
