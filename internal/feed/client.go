package feed

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/danielpatrickdp/reflex-controller/gen/feedpb"
	"github.com/danielpatrickdp/reflex-controller/internal/audit"
	"github.com/danielpatrickdp/reflex-controller/internal/coefficient"
)

// #region types
// CycleInput is one instrument's input for a control cycle: the signal
// snapshot and the decisions pending audit.
type CycleInput struct {
	Snapshot  coefficient.SignalSnapshot
	Decisions []audit.DecisionContext
}

// #endregion types

// #region client-struct
// Client wraps the gRPC connection to the upstream fusion engine.
type Client struct {
	conn   *grpc.ClientConn
	client pb.SignalFeedClient
}

// #endregion client-struct

// #region constructor
// NewClient connects to the fusion engine's signal feed.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{
		conn:   conn,
		client: pb.NewSignalFeedClient(conn),
	}, nil
}

// NewClientWithService creates a Client with an injected service
// implementation. Used for testing without a real gRPC connection.
func NewClientWithService(svc pb.SignalFeedClient) *Client {
	return &Client{client: svc}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// #endregion close

// #region get-cycle-input
// GetCycleInput fetches an instrument's snapshot and pending decisions.
func (c *Client) GetCycleInput(ctx context.Context, instrument string) (CycleInput, error) {
	resp, err := c.client.GetCycleInput(ctx, &pb.CycleInputRequest{
		Instrument: instrument,
	})
	if err != nil {
		return CycleInput{}, fmt.Errorf("get cycle input rpc: %w", err)
	}
	if resp.Snapshot == nil {
		return CycleInput{}, fmt.Errorf("get cycle input: empty snapshot for %s", instrument)
	}

	input := CycleInput{
		Snapshot: coefficient.SignalSnapshot{
			FusionStrength:      resp.Snapshot.FusionStrength,
			ReflectiveCoherence: resp.Snapshot.ReflectiveCoherence,
			EnergyGradient:      resp.Snapshot.EnergyGradient,
			Timestamp:           time.Unix(0, resp.Snapshot.TimestampUnixNano).UTC(),
		},
		Decisions: make([]audit.DecisionContext, len(resp.Decisions)),
	}
	for i, d := range resp.Decisions {
		input.Decisions[i] = audit.DecisionContext{
			Instrument:          d.Instrument,
			Decision:            d.Decision,
			ConfidenceFusion:    d.ConfidenceFusion,
			ReflectiveResonance: d.ReflectiveResonance,
			BiasDelta:           d.BiasDelta,
			DeviationVariance:   d.DeviationVariance,
		}
	}
	return input, nil
}

// #endregion get-cycle-input

// #region list-instruments
// ListInstruments returns the instruments the fusion engine is serving.
func (c *Client) ListInstruments(ctx context.Context) ([]string, error) {
	resp, err := c.client.ListInstruments(ctx, &pb.ListInstrumentsRequest{})
	if err != nil {
		return nil, fmt.Errorf("list instruments rpc: %w", err)
	}
	return resp.Instruments, nil
}

// #endregion list-instruments
