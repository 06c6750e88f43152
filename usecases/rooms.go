package usecases

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"expenseml-server/entities"
	"expenseml-server/repositories"
	"expenseml-server/services"

	"gorm.io/gorm"
)

type RoomUseCase struct {
	RoomRepo       repositories.RoomRepository
	UserRepo       repositories.UserRepository
	SettlementRepo repositories.SettlementRepository
	ML             *services.MLClient
}

func NewRoomUseCase(roomRepo repositories.RoomRepository, userRepo repositories.UserRepository, settlementRepo repositories.SettlementRepository, ml *services.MLClient) *RoomUseCase {
	return &RoomUseCase{
		RoomRepo:       roomRepo,
		UserRepo:       userRepo,
		SettlementRepo: settlementRepo,
		ML:             ml,
	}
}

// MemberStat is one member's row in the room intelligence summary.
type MemberStat struct {
	MemberID      string  `json:"member_id"`
	Name          string  `json:"name"`
	Paid          float64 `json:"paid"`
	FairnessScore int64   `json:"fairness_score"`
	Status        string  `json:"status"`
}

// RoomIntelligence is the derived view of a room: who paid what, who
// should pay whom, and the presentational fairness metrics.
type RoomIntelligence struct {
	MemberStats       []MemberStat `json:"member_stats"`
	TopSpender        string       `json:"top_spender"`
	Transfers         []Transfer   `json:"transfers"`
	SettlementSummary []string     `json:"settlement_summary"`
	TotalRoomExpense  float64      `json:"total_room_expense"`
}

// RoomSummary is a room plus its intelligence block.
type RoomSummary struct {
	*entities.Room
	Intelligence RoomIntelligence `json:"intelligence"`
}

// CreateRoom creates a room with a fresh join code; the creator is the
// first member.
func (uc *RoomUseCase) CreateRoom(userID, name string) (*entities.Room, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("room name is required")
	}
	user, err := uc.UserRepo.GetByID(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	code, err := generateRoomCode()
	if err != nil {
		return nil, err
	}

	room := &entities.Room{
		Name:        name,
		Code:        code,
		CreatedByID: userID,
		Members:     []entities.User{*user},
	}
	if err := uc.RoomRepo.Create(room); err != nil {
		return nil, err
	}
	return room, nil
}

// JoinRoom adds the caller to the room behind the join code.
func (uc *RoomUseCase) JoinRoom(userID, code string) (*entities.Room, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errors.New("room code is required")
	}

	room, err := uc.RoomRepo.GetByCode(code)
	if err != nil {
		return nil, ErrNotFound
	}
	for _, m := range room.Members {
		if m.ID == userID {
			return nil, errors.New("you are already a member of this room")
		}
	}

	user, err := uc.UserRepo.GetByID(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := uc.RoomRepo.AddMember(room, user); err != nil {
		return nil, err
	}
	return uc.RoomRepo.GetByID(room.ID)
}

// AddSharedExpense appends an expense paid by the caller to their room.
// The read-then-append is not transactional; concurrent posts to the
// same room can interleave.
func (uc *RoomUseCase) AddSharedExpense(userID, description string, amount float64) (*entities.Room, error) {
	if strings.TrimSpace(description) == "" {
		return nil, errors.New("description is required")
	}
	if amount <= 0 {
		return nil, errors.New("amount must be greater than zero")
	}

	room, err := uc.RoomRepo.GetByMemberID(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	expense := &entities.SharedExpense{
		RoomID:      room.ID,
		Description: description,
		Amount:      amount,
		PaidByID:    userID,
	}
	if err := uc.RoomRepo.AddExpense(expense); err != nil {
		return nil, err
	}
	return uc.RoomRepo.GetByID(room.ID)
}

// MyRoom returns the caller's room with its intelligence summary, or
// (nil, nil) when they are not in any room.
func (uc *RoomUseCase) MyRoom(userID string) (*RoomSummary, error) {
	room, err := uc.RoomRepo.GetByMemberID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &RoomSummary{Room: room, Intelligence: BuildIntelligence(room)}, nil
}

// BuildIntelligence derives member stats, the top spender and the
// greedy settlement plan for a room.
func BuildIntelligence(room *entities.Room) RoomIntelligence {
	balances := ComputeBalances(room.Members, room.Expenses)

	total := 0.0
	for _, e := range room.Expenses {
		total += e.Amount
	}

	stats := make([]MemberStat, 0, len(balances))
	for _, b := range balances {
		status := "Settler"
		if !b.Balance.IsNegative() {
			status = "Provider"
		}
		// paid − balance is exactly the member's equal share.
		stats = append(stats, MemberStat{
			MemberID:      b.UserID,
			Name:          b.Name,
			Paid:          b.Paid.InexactFloat64(),
			FairnessScore: FairnessScore(b.Paid, b.Paid.Sub(b.Balance)),
			Status:        status,
		})
	}

	topSpender := topSpenderByFrequency(room)

	transfers := SettleBalances(balances)
	summary := make([]string, 0, len(transfers))
	for _, t := range transfers {
		summary = append(summary, FormatTransfer(t))
	}

	return RoomIntelligence{
		MemberStats:       stats,
		TopSpender:        topSpender,
		Transfers:         transfers,
		SettlementSummary: summary,
		TotalRoomExpense:  total,
	}
}

// topSpenderByFrequency picks the member who paid the most often, not
// the most in total.
func topSpenderByFrequency(room *entities.Room) string {
	frequency := make(map[string]int)
	for _, e := range room.Expenses {
		frequency[e.PaidByID]++
	}
	if len(frequency) == 0 {
		return "N/A"
	}

	ids := make([]string, 0, len(frequency))
	for id := range frequency {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return frequency[ids[i]] > frequency[ids[j]] })

	for _, m := range room.Members {
		if m.ID == ids[0] {
			return m.Name
		}
	}
	return "N/A"
}

// PredictRoomExpense forecasts next month's room total, falling back
// to the latest monthly total when the ML service is offline.
func (uc *RoomUseCase) PredictRoomExpense(userID string) (*NextMonthForecast, error) {
	room, err := uc.RoomRepo.GetByMemberID(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	totalsByMonth := make(map[string]float64)
	for _, e := range room.Expenses {
		key := fmt.Sprintf("%04d-%02d", e.Date.Year(), int(e.Date.Month()))
		totalsByMonth[key] += e.Amount
	}
	keys := make([]string, 0, len(totalsByMonth))
	for k := range totalsByMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]float64, 0, len(keys))
	for _, k := range keys {
		series = append(series, totalsByMonth[k])
	}
	if len(series) == 0 {
		return &NextMonthForecast{PredictedExpense: 0}, nil
	}

	predicted, err := uc.ML.PredictNextMonth(series)
	if err != nil {
		return &NextMonthForecast{
			PredictedExpense: series[len(series)-1],
			Error:            "ML Service Unavailable",
			OfflineMode:      true,
		}, nil
	}
	return &NextMonthForecast{PredictedExpense: predicted}, nil
}

// RecordSettlement stores a payer→payee transfer in the caller's room.
// The caller is the payer.
func (uc *RoomUseCase) RecordSettlement(userID, payeeID string, amount float64) (*entities.Settlement, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be greater than zero")
	}
	room, err := uc.RoomRepo.GetByMemberID(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	payeeIsMember := false
	for _, m := range room.Members {
		if m.ID == payeeID {
			payeeIsMember = true
			break
		}
	}
	if !payeeIsMember {
		return nil, errors.New("payee is not a member of the room")
	}

	settlement := &entities.Settlement{
		RoomID:  room.ID,
		PayerID: userID,
		PayeeID: payeeID,
		Amount:  amount,
	}
	if err := uc.SettlementRepo.Create(settlement); err != nil {
		return nil, err
	}
	return settlement, nil
}

// ListSettlements returns the recorded settlements of the caller's room.
func (uc *RoomUseCase) ListSettlements(userID string) ([]entities.Settlement, error) {
	room, err := uc.RoomRepo.GetByMemberID(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return uc.SettlementRepo.GetByRoomID(room.ID)
}

// MarkSettled flips a recorded settlement to settled; only members of
// the settlement's room may do so.
func (uc *RoomUseCase) MarkSettled(userID, settlementID string) (*entities.Settlement, error) {
	settlement, err := uc.SettlementRepo.GetByID(settlementID)
	if err != nil {
		return nil, ErrNotFound
	}
	room, err := uc.RoomRepo.GetByMemberID(userID)
	if err != nil || room.ID != settlement.RoomID {
		return nil, ErrNotAuthorized
	}

	settlement.IsSettled = true
	if err := uc.SettlementRepo.Update(settlement); err != nil {
		return nil, err
	}
	return settlement, nil
}

// generateRoomCode returns a 6-character uppercase hex join code.
func generateRoomCode() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}
