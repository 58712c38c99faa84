package grpcclient

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/visionchain/screening-api/internal/inference"
	"github.com/visionchain/screening-api/internal/logging"
	proto "github.com/visionchain/screening-api/proto"
)

// DialClassifier returns a ready-to-use gRPC client for the model-serving
// sidecar hosting the pretrained retinopathy network.
func DialClassifier(ctx context.Context, addr string, logger *zap.Logger) (inference.Client, *grpc.ClientConn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(
		dialCtx,
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	if err != nil {
		wrapped := logging.NewOperationError("grpcclient.dial_classifier", "", err)
		logger.Error("failed to dial classifier", zap.Error(wrapped), zap.String("addr", addr))
		return nil, nil, wrapped
	}
	client := proto.NewRetinaClassifierClient(conn)
	return &grpcClassifier{client: client, logger: logger}, conn, nil
}

type grpcClassifier struct {
	client proto.RetinaClassifierClient
	logger *zap.Logger
}

func (g *grpcClassifier) Classify(ctx context.Context, screeningID string, imageBytes []byte) (*inference.Result, error) {
	resp, err := g.client.Classify(ctx, &proto.ClassifyRequest{ScreeningId: screeningID, ImageData: imageBytes})
	if err != nil {
		wrapped := logging.NewOperationError("grpcclient.classify", screeningID, err)
		g.logger.Error("classifier call failed", zap.Error(wrapped), zap.String("screening_id", screeningID))
		return nil, wrapped
	}

	scores := make(map[string]float64, len(resp.GetClassScores()))
	for _, cs := range resp.GetClassScores() {
		scores[cs.GetLabel()] = float64(cs.GetScore())
	}
	return &inference.Result{
		Label:            resp.GetLabel(),
		LabelIndex:       int(resp.GetLabelIndex()),
		Confidence:       float64(resp.GetConfidence()),
		ClassScores:      scores,
		HeatmapAvailable: resp.GetHeatmapAvailable(),
		HeatmapFilename:  resp.GetHeatmapFilename(),
	}, nil
}
