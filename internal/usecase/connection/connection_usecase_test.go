package connection

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kindredapp/kindred-backend/internal/domain"
)

type stubConnectionRepo struct {
	conns  map[int]*domain.Connection
	nextID int
}

func newStubConnectionRepo() *stubConnectionRepo {
	return &stubConnectionRepo{conns: make(map[int]*domain.Connection), nextID: 1}
}

func (r *stubConnectionRepo) Create(_ context.Context, conn *domain.Connection) error {
	conn.ID = r.nextID
	r.nextID++
	r.conns[conn.ID] = conn
	return nil
}

func (r *stubConnectionRepo) GetByID(_ context.Context, id int) (*domain.Connection, error) {
	conn, ok := r.conns[id]
	if !ok {
		return nil, domain.ErrConnectionNotFound
	}
	copied := *conn
	return &copied, nil
}

func (r *stubConnectionRepo) GetByUsers(_ context.Context, requesterID, receiverID int) (*domain.Connection, error) {
	for _, conn := range r.conns {
		if conn.RequesterID == requesterID && conn.ReceiverID == receiverID {
			return conn, nil
		}
	}
	return nil, domain.ErrConnectionNotFound
}

func (r *stubConnectionRepo) GetBetween(_ context.Context, user1ID, user2ID int) (*domain.Connection, error) {
	for _, conn := range r.conns {
		if (conn.RequesterID == user1ID && conn.ReceiverID == user2ID) ||
			(conn.RequesterID == user2ID && conn.ReceiverID == user1ID) {
			return conn, nil
		}
	}
	return nil, domain.ErrConnectionNotFound
}

func (r *stubConnectionRepo) UpdateStatus(_ context.Context, id int, status domain.ConnectionStatus) error {
	conn, ok := r.conns[id]
	if !ok {
		return domain.ErrConnectionNotFound
	}
	conn.Status = status
	return nil
}

func (r *stubConnectionRepo) ListIncoming(_ context.Context, receiverID int, status domain.ConnectionStatus) ([]*domain.Connection, error) {
	var out []*domain.Connection
	for id := 0; id < r.nextID; id++ {
		if conn, ok := r.conns[id]; ok && conn.ReceiverID == receiverID && conn.Status == status {
			out = append(out, conn)
		}
	}
	return out, nil
}

func (r *stubConnectionRepo) ListOutgoing(_ context.Context, requesterID int, status domain.ConnectionStatus) ([]*domain.Connection, error) {
	var out []*domain.Connection
	for id := 0; id < r.nextID; id++ {
		if conn, ok := r.conns[id]; ok && conn.RequesterID == requesterID && conn.Status == status {
			out = append(out, conn)
		}
	}
	return out, nil
}

func (r *stubConnectionRepo) ListAcceptedForUser(_ context.Context, userID int) ([]*domain.Connection, error) {
	var out []*domain.Connection
	for id := 0; id < r.nextID; id++ {
		if conn, ok := r.conns[id]; ok && conn.HasUser(userID) && conn.Status == domain.ConnectionAccepted {
			out = append(out, conn)
		}
	}
	return out, nil
}

type stubProfileRepo struct {
	profiles map[int]*domain.Profile
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	r.profiles[p.UserID] = p
	return nil
}

func (r *stubProfileRepo) GetByUserID(_ context.Context, userID int) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (r *stubProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	r.profiles[p.UserID] = p
	return nil
}

func (r *stubProfileRepo) ListExcluding(_ context.Context, userID int) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for id := 0; id < 1000; id++ {
		if p, ok := r.profiles[id]; ok && id != userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubUserInterestRepo struct {
	interests map[int][]*domain.Interest
}

func (r *stubUserInterestRepo) Add(_ context.Context, userID, interestID int) error { return nil }

func (r *stubUserInterestRepo) Remove(_ context.Context, userID, interestID int) error { return nil }

func (r *stubUserInterestRepo) ListForUser(_ context.Context, userID int) ([]*domain.Interest, error) {
	return r.interests[userID], nil
}

func (r *stubUserInterestRepo) SharedCounts(_ context.Context, userID int) (map[int]int, error) {
	return map[int]int{}, nil
}

func newTestUseCase(connRepo *stubConnectionRepo, userIDs ...int) *ConnectionUseCase {
	profileRepo := &stubProfileRepo{profiles: make(map[int]*domain.Profile)}
	for _, id := range userIDs {
		profileRepo.profiles[id] = &domain.Profile{
			UserID:   id,
			Username: fmt.Sprintf("user%d", id),
		}
	}
	interestRepo := &stubUserInterestRepo{interests: make(map[int][]*domain.Interest)}
	return NewConnectionUseCase(connRepo, profileRepo, interestRepo, nil, nil)
}

func TestRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending connection", func(t *testing.T) {
		repo := newStubConnectionRepo()
		uc := newTestUseCase(repo, 1, 2)

		conn, err := uc.Request(ctx, 1, 2)
		if err != nil {
			t.Fatalf("Request() error = %v", err)
		}
		if conn.Status != domain.ConnectionPending {
			t.Errorf("status = %q, want pending", conn.Status)
		}
		if conn.RequesterID != 1 || conn.ReceiverID != 2 {
			t.Errorf("pair = (%d, %d), want (1, 2)", conn.RequesterID, conn.ReceiverID)
		}
	})

	t.Run("rejects self connection", func(t *testing.T) {
		uc := newTestUseCase(newStubConnectionRepo(), 1)
		if _, err := uc.Request(ctx, 1, 1); !errors.Is(err, domain.ErrCannotConnectSelf) {
			t.Errorf("error = %v, want ErrCannotConnectSelf", err)
		}
	})

	t.Run("rejects unknown receiver", func(t *testing.T) {
		uc := newTestUseCase(newStubConnectionRepo(), 1)
		if _, err := uc.Request(ctx, 1, 99); !errors.Is(err, domain.ErrProfileNotFound) {
			t.Errorf("error = %v, want ErrProfileNotFound", err)
		}
	})

	t.Run("rejects duplicate request", func(t *testing.T) {
		repo := newStubConnectionRepo()
		uc := newTestUseCase(repo, 1, 2)
		if _, err := uc.Request(ctx, 1, 2); err != nil {
			t.Fatalf("first Request() error = %v", err)
		}
		if _, err := uc.Request(ctx, 1, 2); !errors.Is(err, domain.ErrConnectionExists) {
			t.Errorf("error = %v, want ErrConnectionExists", err)
		}
	})
}

func TestTransitions(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*ConnectionUseCase, *domain.Connection) {
		t.Helper()
		repo := newStubConnectionRepo()
		uc := newTestUseCase(repo, 1, 2)
		conn, err := uc.Request(ctx, 1, 2)
		if err != nil {
			t.Fatalf("Request() error = %v", err)
		}
		return uc, conn
	}

	t.Run("receiver accepts", func(t *testing.T) {
		uc, conn := setup(t)
		resp, err := uc.Accept(ctx, 2, conn.ID)
		if err != nil {
			t.Fatalf("Accept() error = %v", err)
		}
		if resp.Connection.Status != domain.ConnectionAccepted {
			t.Errorf("status = %q, want accepted", resp.Connection.Status)
		}
		if resp.Icebreakers != nil {
			t.Errorf("icebreakers = %v, want none without AI client", resp.Icebreakers)
		}
	})

	t.Run("receiver rejects", func(t *testing.T) {
		uc, conn := setup(t)
		got, err := uc.Reject(ctx, 2, conn.ID)
		if err != nil {
			t.Fatalf("Reject() error = %v", err)
		}
		if got.Status != domain.ConnectionRejected {
			t.Errorf("status = %q, want rejected", got.Status)
		}
	})

	t.Run("receiver blocks", func(t *testing.T) {
		uc, conn := setup(t)
		got, err := uc.Block(ctx, 2, conn.ID)
		if err != nil {
			t.Fatalf("Block() error = %v", err)
		}
		if got.Status != domain.ConnectionBlocked {
			t.Errorf("status = %q, want blocked", got.Status)
		}
	})

	t.Run("requester cannot accept", func(t *testing.T) {
		uc, conn := setup(t)
		if _, err := uc.Accept(ctx, 1, conn.ID); !errors.Is(err, domain.ErrNotConnectionReceiver) {
			t.Errorf("error = %v, want ErrNotConnectionReceiver", err)
		}
	})

	t.Run("third party cannot accept", func(t *testing.T) {
		uc, conn := setup(t)
		if _, err := uc.Accept(ctx, 3, conn.ID); !errors.Is(err, domain.ErrNotConnectionReceiver) {
			t.Errorf("error = %v, want ErrNotConnectionReceiver", err)
		}
	})

	t.Run("resolved connection cannot transition again", func(t *testing.T) {
		uc, conn := setup(t)
		if _, err := uc.Accept(ctx, 2, conn.ID); err != nil {
			t.Fatalf("Accept() error = %v", err)
		}
		if _, err := uc.Reject(ctx, 2, conn.ID); !errors.Is(err, domain.ErrConnectionNotPending) {
			t.Errorf("error = %v, want ErrConnectionNotPending", err)
		}
	})

	t.Run("unknown connection", func(t *testing.T) {
		uc, _ := setup(t)
		if _, err := uc.Accept(ctx, 2, 999); !errors.Is(err, domain.ErrConnectionNotFound) {
			t.Errorf("error = %v, want ErrConnectionNotFound", err)
		}
	})
}

func TestLists(t *testing.T) {
	ctx := context.Background()
	repo := newStubConnectionRepo()
	uc := newTestUseCase(repo, 1, 2, 3)

	conn12, err := uc.Request(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Request(1,2) error = %v", err)
	}
	if _, err := uc.Request(ctx, 3, 1); err != nil {
		t.Fatalf("Request(3,1) error = %v", err)
	}
	if _, err := uc.Accept(ctx, 2, conn12.ID); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}

	incoming, err := uc.ListIncoming(ctx, 1)
	if err != nil {
		t.Fatalf("ListIncoming() error = %v", err)
	}
	if len(incoming) != 1 || incoming[0].Connection.RequesterID != 3 {
		t.Errorf("incoming = %+v, want single pending request from user 3", incoming)
	}
	if incoming[0].Profile == nil || incoming[0].Profile.Username != "user3" {
		t.Errorf("incoming profile = %+v, want user3", incoming[0].Profile)
	}

	outgoing, err := uc.ListOutgoing(ctx, 3)
	if err != nil {
		t.Fatalf("ListOutgoing() error = %v", err)
	}
	if len(outgoing) != 1 || outgoing[0].Connection.ReceiverID != 1 {
		t.Errorf("outgoing = %+v, want single pending request to user 1", outgoing)
	}

	accepted, err := uc.ListAccepted(ctx, 1)
	if err != nil {
		t.Fatalf("ListAccepted() error = %v", err)
	}
	if len(accepted) != 1 || accepted[0].Profile == nil || accepted[0].Profile.Username != "user2" {
		t.Errorf("accepted = %+v, want user2's profile attached", accepted)
	}
}

func TestIsAcceptedBetween(t *testing.T) {
	ctx := context.Background()
	repo := newStubConnectionRepo()
	uc := newTestUseCase(repo, 1, 2, 3)

	conn, err := uc.Request(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	ok, err := uc.IsAcceptedBetween(ctx, 1, 2)
	if err != nil || ok {
		t.Errorf("IsAcceptedBetween() = %v, %v before accept, want false, nil", ok, err)
	}

	if _, err := uc.Accept(ctx, 2, conn.ID); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}

	// Direction must not matter.
	for _, pair := range [][2]int{{1, 2}, {2, 1}} {
		ok, err := uc.IsAcceptedBetween(ctx, pair[0], pair[1])
		if err != nil || !ok {
			t.Errorf("IsAcceptedBetween(%d, %d) = %v, %v, want true, nil", pair[0], pair[1], ok, err)
		}
	}

	ok, err = uc.IsAcceptedBetween(ctx, 1, 3)
	if err != nil || ok {
		t.Errorf("IsAcceptedBetween(1, 3) = %v, %v, want false, nil", ok, err)
	}
}
