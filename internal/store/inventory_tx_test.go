package store

import (
	"errors"
	"strings"
	"testing"
)

func TestSellTxCreditsOnceThenInvalidState(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	userID := mustCreateUser(t, st, ctx, "u1", 1000)
	caseID, itemID := mustSeedCase(t, st, ctx, 1000, 700)
	rec, _, err := st.OpenCaseTx(ctx, userID, caseID, itemID, 1000)
	if err != nil {
		t.Fatalf("open case: %v", err)
	}

	credited, bal, err := st.SellTx(ctx, userID, rec.ID)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if credited != 700 {
		t.Fatalf("expected credited 700, got %d", credited)
	}
	if bal != 700 {
		t.Fatalf("expected balance 700, got %d", bal)
	}

	if _, _, err := st.SellTx(ctx, userID, rec.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second sell: expected ErrInvalidState, got %v", err)
	}
	// Total credit stays one item's value.
	if got, _ := st.GetUserBalance(ctx, userID); got != 700 {
		t.Fatalf("balance after double sell attempt: %d", got)
	}
}

func TestSellTxWrongOwner(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	ownerID := mustCreateUser(t, st, ctx, "owner", 1000)
	otherID := mustCreateUser(t, st, ctx, "other", 1000)
	caseID, itemID := mustSeedCase(t, st, ctx, 1000, 700)
	rec, _, err := st.OpenCaseTx(ctx, ownerID, caseID, itemID, 1000)
	if err != nil {
		t.Fatalf("open case: %v", err)
	}

	if _, _, err := st.SellTx(ctx, otherID, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign record, got %v", err)
	}
}

func TestRequestWithdrawTxOnlyOnce(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	userID := mustCreateUser(t, st, ctx, "u1", 1000)
	caseID, itemID := mustSeedCase(t, st, ctx, 1000, 700)
	rec, _, err := st.OpenCaseTx(ctx, userID, caseID, itemID, 1000)
	if err != nil {
		t.Fatalf("open case: %v", err)
	}

	reqID, err := st.RequestWithdrawTx(ctx, userID, rec.ID, "ship to me")
	if err != nil {
		t.Fatalf("request withdraw: %v", err)
	}
	req, err := st.GetWithdrawRequest(ctx, reqID)
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if req.Status != WithdrawPending {
		t.Fatalf("expected pending request, got %s", req.Status)
	}
	got, err := st.GetInventoryRecord(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if got.Status != InvWithdrawRequested {
		t.Fatalf("expected withdraw_requested, got %s", got.Status)
	}

	if _, err := st.RequestWithdrawTx(ctx, userID, rec.ID, ""); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second request: expected ErrInvalidState, got %v", err)
	}
	// Selling while a withdrawal is pending is also illegal.
	if _, _, err := st.SellTx(ctx, userID, rec.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("sell while requested: expected ErrInvalidState, got %v", err)
	}
}

func TestRequestWithdrawTxTruncatesNote(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	userID := mustCreateUser(t, st, ctx, "u1", 1000)
	caseID, itemID := mustSeedCase(t, st, ctx, 1000, 700)
	rec, _, err := st.OpenCaseTx(ctx, userID, caseID, itemID, 1000)
	if err != nil {
		t.Fatalf("open case: %v", err)
	}

	reqID, err := st.RequestWithdrawTx(ctx, userID, rec.ID, strings.Repeat("x", 500))
	if err != nil {
		t.Fatalf("request withdraw: %v", err)
	}
	req, err := st.GetWithdrawRequest(ctx, reqID)
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if len(req.Note) != 200 {
		t.Fatalf("expected note truncated to 200, got %d", len(req.Note))
	}
}

func TestRequestWithdrawTxTruncatesNoteByRunes(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	userID := mustCreateUser(t, st, ctx, "u1", 4000)
	caseID, itemID := mustSeedCase(t, st, ctx, 1000, 700)

	tests := []struct {
		name string
		note string
		want string
	}{
		{
			// 300 bytes; a byte cut at 200 would split the 100th rune.
			name: "cyrillic over limit",
			note: strings.Repeat("ж", 300),
			want: strings.Repeat("ж", 200),
		},
		{
			name: "cyrillic under limit",
			note: strings.Repeat("ж", 150),
			want: strings.Repeat("ж", 150),
		},
		{
			name: "four byte runes over limit",
			note: strings.Repeat("\U0001F3B0", 250),
			want: strings.Repeat("\U0001F3B0", 200),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _, err := st.OpenCaseTx(ctx, userID, caseID, itemID, 1000)
			if err != nil {
				t.Fatalf("open case: %v", err)
			}
			reqID, err := st.RequestWithdrawTx(ctx, userID, rec.ID, tt.note)
			if err != nil {
				t.Fatalf("request withdraw: %v", err)
			}
			req, err := st.GetWithdrawRequest(ctx, reqID)
			if err != nil {
				t.Fatalf("get request: %v", err)
			}
			if req.Note != tt.want {
				t.Fatalf("note %d runes, want %d", len([]rune(req.Note)), len([]rune(tt.want)))
			}
		})
	}
}

func TestResolveWithdrawTxTransitions(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	userID := mustCreateUser(t, st, ctx, "u1", 4000)
	caseID, itemID := mustSeedCase(t, st, ctx, 1000, 700)

	openAndRequest := func() (string, string) {
		rec, _, err := st.OpenCaseTx(ctx, userID, caseID, itemID, 1000)
		if err != nil {
			t.Fatalf("open case: %v", err)
		}
		reqID, err := st.RequestWithdrawTx(ctx, userID, rec.ID, "")
		if err != nil {
			t.Fatalf("request withdraw: %v", err)
		}
		return rec.ID, reqID
	}

	t.Run("rejected returns record to owned", func(t *testing.T) {
		invID, reqID := openAndRequest()
		req, err := st.ResolveWithdrawTx(ctx, reqID, WithdrawRejected)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if req.Status != WithdrawRejected {
			t.Fatalf("expected rejected, got %s", req.Status)
		}
		rec, err := st.GetInventoryRecord(ctx, invID)
		if err != nil {
			t.Fatalf("get record: %v", err)
		}
		if rec.Status != InvOwned {
			t.Fatalf("expected owned after rejection, got %s", rec.Status)
		}
		// Back in owned, the record is sellable again.
		if _, _, err := st.SellTx(ctx, userID, invID); err != nil {
			t.Fatalf("sell after rejection: %v", err)
		}
	})

	t.Run("done marks record withdraw_done", func(t *testing.T) {
		invID, reqID := openAndRequest()
		if _, err := st.ResolveWithdrawTx(ctx, reqID, WithdrawDone); err != nil {
			t.Fatalf("resolve: %v", err)
		}
		rec, err := st.GetInventoryRecord(ctx, invID)
		if err != nil {
			t.Fatalf("get record: %v", err)
		}
		if rec.Status != InvWithdrawDone {
			t.Fatalf("expected withdraw_done, got %s", rec.Status)
		}
		// Terminal: no further transitions.
		if _, err := st.ResolveWithdrawTx(ctx, reqID, WithdrawRejected); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("resolve after done: expected ErrInvalidState, got %v", err)
		}
	})

	t.Run("approved then done", func(t *testing.T) {
		invID, reqID := openAndRequest()
		if _, err := st.ResolveWithdrawTx(ctx, reqID, WithdrawApproved); err != nil {
			t.Fatalf("approve: %v", err)
		}
		rec, err := st.GetInventoryRecord(ctx, invID)
		if err != nil {
			t.Fatalf("get record: %v", err)
		}
		if rec.Status != InvWithdrawRequested {
			t.Fatalf("approval should keep record withdraw_requested, got %s", rec.Status)
		}
		if _, err := st.ResolveWithdrawTx(ctx, reqID, WithdrawDone); err != nil {
			t.Fatalf("complete: %v", err)
		}
		rec, err = st.GetInventoryRecord(ctx, invID)
		if err != nil {
			t.Fatalf("get record: %v", err)
		}
		if rec.Status != InvWithdrawDone {
			t.Fatalf("expected withdraw_done, got %s", rec.Status)
		}
	})

	t.Run("approved cannot be rejected", func(t *testing.T) {
		_, reqID := openAndRequest()
		if _, err := st.ResolveWithdrawTx(ctx, reqID, WithdrawApproved); err != nil {
			t.Fatalf("approve: %v", err)
		}
		if _, err := st.ResolveWithdrawTx(ctx, reqID, WithdrawRejected); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
	})

	t.Run("unknown request", func(t *testing.T) {
		if _, err := st.ResolveWithdrawTx(ctx, NewID(), WithdrawDone); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
