package roomquery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	lkproto "github.com/livekit/protocol/livekit"
	"github.com/romashorodok/salon-platform/pkg/livekit"
	"github.com/romashorodok/salon-platform/pkg/protocol"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const defaultParallelism = 8

var tracer = otel.Tracer("github.com/romashorodok/salon-platform/internal/roomquery")

// RoomLister is the subset of the provider room service used for counting.
type RoomLister interface {
	ListRooms(ctx context.Context, req *lkproto.ListRoomsRequest) (*lkproto.ListRoomsResponse, error)
	ListParticipants(ctx context.Context, req *lkproto.ListParticipantsRequest) (*lkproto.ListParticipantsResponse, error)
}

type RoomQueryService struct {
	rooms       RoomLister
	cache       CountCache
	logger      *slog.Logger
	parallelism int
}

// ParticipantCount resolves the participant count of one room. A room the
// provider does not know about counts as zero.
func (s *RoomQueryService) ParticipantCount(ctx context.Context, roomName string) (int, error) {
	if roomName == "" {
		return 0, ErrMissingRoomName
	}

	ctx, span := tracer.Start(ctx, "roomquery.ParticipantCount", trace.WithAttributes(attribute.String("room", roomName)))
	defer span.End()

	listed, err := s.rooms.ListRooms(ctx, &lkproto.ListRoomsRequest{Names: []string{roomName}})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, fmt.Errorf("%w: %w", ErrRoomParticipants, err)
	}
	if !containsRoom(listed.GetRooms(), roomName) {
		return 0, nil
	}

	count, err := s.countParticipants(ctx, roomName)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, fmt.Errorf("%w: %w", ErrRoomParticipants, err)
	}
	span.SetAttributes(attribute.Int("participants", count))
	return count, nil
}

// ParticipantCounts resolves every requested room with one provider listing.
// A failure on a single room degrades that room to zero.
func (s *RoomQueryService) ParticipantCounts(ctx context.Context, roomNames []string) (map[string]int, error) {
	counts := make(map[string]int, len(roomNames))
	if len(roomNames) == 0 {
		return counts, nil
	}

	ctx, span := tracer.Start(ctx, "roomquery.ParticipantCounts", trace.WithAttributes(attribute.Int("rooms", len(roomNames))))
	defer span.End()

	var pending []string
	seen := make(map[string]struct{}, len(roomNames))
	for _, name := range roomNames {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if s.cache != nil {
			if count, ok := s.cache.Get(ctx, name); ok {
				counts[name] = count
				continue
			}
		}
		pending = append(pending, name)
	}
	if len(pending) == 0 {
		return counts, nil
	}

	listed, err := s.rooms.ListRooms(ctx, &lkproto.ListRoomsRequest{Names: pending})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %w", ErrListRooms, err)
	}
	rooms := listed.GetRooms()

	resolved := make([]int, len(pending))
	failed := make([]bool, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, name := range pending {
		if !containsRoom(rooms, name) {
			continue
		}
		g.Go(func() error {
			count, err := s.countParticipants(gctx, name)
			if err != nil {
				s.logger.Error("failed to get participants", slog.String("room", name), slog.String("err", err.Error()))
				failed[i] = true
				return nil
			}
			resolved[i] = count
			return nil
		})
	}
	_ = g.Wait()

	// A degraded zero is answered but never cached.
	fresh := make(map[string]int, len(pending))
	for i, name := range pending {
		counts[name] = resolved[i]
		if !failed[i] {
			fresh[name] = resolved[i]
		}
	}
	if s.cache != nil && len(fresh) > 0 {
		s.cache.Set(ctx, fresh)
	}
	return counts, nil
}

func (s *RoomQueryService) countParticipants(ctx context.Context, roomName string) (int, error) {
	resp, err := s.rooms.ListParticipants(ctx, &lkproto.ListParticipantsRequest{Room: roomName})
	if err != nil {
		// Room closed between the listing and this call.
		if livekit.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return len(resp.GetParticipants()), nil
}

func containsRoom(rooms []*lkproto.Room, name string) bool {
	for _, room := range rooms {
		if room.GetName() == name {
			return true
		}
	}
	return false
}

// DecodeRoomNames reads the batch request body. A missing, null or non-string
// array roomNames field is rejected.
func DecodeRoomNames(r io.Reader) ([]string, error) {
	var body struct {
		RoomNames json.RawMessage `json:"roomNames"`
	}
	if err := protocol.DecodeJSON(r, &body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRoomNamesNotArray, err)
	}
	if len(body.RoomNames) == 0 || string(body.RoomNames) == "null" {
		return nil, ErrRoomNamesNotArray
	}

	var names []string
	if err := json.Unmarshal(body.RoomNames, &names); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRoomNamesNotArray, err)
	}
	return names, nil
}

type RoomQueryServiceOption func(*RoomQueryService)

func WithCache(cache CountCache) RoomQueryServiceOption {
	return func(s *RoomQueryService) {
		s.cache = cache
	}
}

func WithParallelism(n int) RoomQueryServiceOption {
	return func(s *RoomQueryService) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

func NewRoomQueryService(rooms RoomLister, logger *slog.Logger, opts ...RoomQueryServiceOption) *RoomQueryService {
	s := &RoomQueryService{
		rooms:       rooms,
		logger:      logger,
		parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
