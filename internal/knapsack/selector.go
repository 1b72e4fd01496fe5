// Package knapsack implements the discrete 0/1 repair selector: choose the
// subset of repairs that maximizes total severity addressed without the
// combined cost exceeding the budget. Unlike the allocation engine it answers
// "which repairs to do", not "how much to give each".
//
// The solver is an exact branch-and-bound with a fractional-relaxation upper
// bound. Items are visited in a deterministic order, so results are
// reproducible. The search honors the context deadline and reports a timeout
// through the result status; infeasibility is a business outcome, never an
// error.
package knapsack

import (
	"context"
	"sort"
	"time"

	"github.com/roadwatch/budget-go/internal/domain"
)

// deadlineCheckInterval is how many search nodes are expanded between
// context deadline checks.
const deadlineCheckInterval = 1024

// Select solves the 0/1 selection over candidates. Candidates with a
// non-positive severity score or a negative cost are not actionable and are
// filtered out before the solve. A timeout of zero disables the bound and
// relies on the caller's context alone.
func Select(ctx context.Context, candidates []domain.Candidate, totalBudget int64, timeout time.Duration) domain.SelectionResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if len(candidates) == 0 {
		return emptyResult(totalBudget, domain.SelectionEmptyInput)
	}
	if totalBudget <= 0 {
		return emptyResult(totalBudget, domain.SelectionNoBudget)
	}

	items := make([]item, 0, len(candidates))
	for i, c := range candidates {
		if c.SeverityScore <= 0 || c.Cost < 0 {
			continue
		}
		items = append(items, item{idx: i, id: c.ID, cost: c.Cost, severity: c.SeverityScore})
	}
	if len(items) == 0 {
		return emptyResult(totalBudget, domain.SelectionNoActionable)
	}

	// Sort by severity-per-cost ratio, best first, so the fractional bound is
	// tight and the greedy take-branch is explored first. Cross-multiplied to
	// keep zero-cost items (infinite ratio) at the front.
	sort.SliceStable(items, func(a, b int) bool {
		lhs := items[a].severity * float64(items[b].cost)
		rhs := items[b].severity * float64(items[a].cost)
		if lhs != rhs {
			return lhs > rhs
		}
		return items[a].idx < items[b].idx
	})

	s := &solver{ctx: ctx, items: items, budget: totalBudget, cur: make([]bool, len(items))}
	s.bestPick = make([]bool, len(items))
	s.search(0, 0, 0)

	status := domain.SelectionOptimal
	if s.timedOut {
		status = domain.SelectionTimeout
	}

	// Report selected ids in the caller's input order.
	selectedIdx := make([]int, 0, len(items))
	var totalCost int64
	var totalSeverity float64
	byIdx := make(map[int]item, len(items))
	for i, it := range items {
		if s.bestPick[i] {
			selectedIdx = append(selectedIdx, it.idx)
			byIdx[it.idx] = it
			totalCost += it.cost
			totalSeverity += it.severity
		}
	}
	sort.Ints(selectedIdx)
	ids := make([]string, len(selectedIdx))
	for i, idx := range selectedIdx {
		ids[i] = byIdx[idx].id
	}

	return domain.SelectionResult{
		SelectedIDs:       ids,
		TotalCost:         totalCost,
		TotalSeverity:     totalSeverity,
		BudgetUtilization: float64(totalCost) / float64(totalBudget),
		RepairsCount:      len(ids),
		Status:            status,
		Budget: domain.BudgetContext{
			BudgetUsed:      totalCost,
			BudgetAvailable: totalBudget,
			BudgetRemaining: totalBudget - totalCost,
		},
	}
}

func emptyResult(totalBudget int64, status domain.SelectionStatus) domain.SelectionResult {
	return domain.SelectionResult{
		SelectedIDs: []string{},
		Status:      status,
		Budget: domain.BudgetContext{
			BudgetAvailable: totalBudget,
			BudgetRemaining: totalBudget,
		},
	}
}

type item struct {
	idx      int
	id       string
	cost     int64
	severity float64
}

type solver struct {
	ctx    context.Context
	items  []item
	budget int64

	cur      []bool
	bestPick []bool
	bestSev  float64
	bestCost int64
	haveBest bool

	nodes    int
	timedOut bool
}

// search expands the decision tree at item i with the given committed cost
// and severity. The take branch is explored before the skip branch.
func (s *solver) search(i int, cost int64, severity float64) {
	if s.timedOut {
		return
	}
	s.nodes++
	if s.nodes%deadlineCheckInterval == 0 && s.ctx.Err() != nil {
		s.timedOut = true
		return
	}

	if i == len(s.items) {
		if !s.haveBest || severity > s.bestSev || (severity == s.bestSev && cost < s.bestCost) {
			s.haveBest = true
			s.bestSev = severity
			s.bestCost = cost
			copy(s.bestPick, s.cur)
		}
		return
	}

	if s.haveBest && severity+s.upperBound(i, s.budget-cost) < s.bestSev {
		return
	}

	if cost+s.items[i].cost <= s.budget {
		s.cur[i] = true
		s.search(i+1, cost+s.items[i].cost, severity+s.items[i].severity)
		s.cur[i] = false
	}
	s.search(i+1, cost, severity)
}

// upperBound is the fractional-knapsack relaxation over items[i:] with the
// given remaining capacity. Valid because items are ratio-sorted.
func (s *solver) upperBound(i int, capacity int64) float64 {
	var bound float64
	for ; i < len(s.items); i++ {
		it := s.items[i]
		if it.cost <= capacity {
			capacity -= it.cost
			bound += it.severity
			continue
		}
		if it.cost > 0 {
			bound += it.severity * float64(capacity) / float64(it.cost)
		}
		break
	}
	return bound
}
