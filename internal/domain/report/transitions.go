package report

// Action represents an admin review action on a report. Delete and view are
// handled outside the transition table: delete removes the row from any
// status, view never mutates.
type Action string

const (
	ActionInvestigate Action = "investigate"
	ActionResolve     Action = "resolve"
	ActionDismiss     Action = "dismiss"
	ActionBlock       Action = "block"
	ActionDelete      Action = "delete"
)

// SideEffect is the moderation directive applied to the reported cagnotte
type SideEffect string

const (
	SideEffectNone    SideEffect = "NONE"
	SideEffectSuspend SideEffect = "SUSPEND"
	SideEffectDelete  SideEffect = "DELETE"
)

// Transition describes the outcome of an action taken from a given status
type Transition struct {
	Next Status
	// Effect is the forced cagnotte side effect. Ignored when
	// CallerChoosesEffect is set.
	Effect SideEffect
	// CallerChoosesEffect marks resolve, where the admin picks
	// NONE, SUSPEND or DELETE in the request.
	CallerChoosesEffect bool
}

type transitionKey struct {
	status Status
	action Action
}

// transitions is the full review state machine. An absent pair means the
// action is illegal from that status; notably nothing leads out of
// resolved or dismissed.
//
// Block and resolve+SUSPEND deliberately remain two separate entry points
// converging on the same suspension: block is the one-click path for
// urgent reports.
var transitions = map[transitionKey]Transition{
	{StatusPending, ActionInvestigate}: {Next: StatusUnderReview, Effect: SideEffectNone},

	{StatusPending, ActionResolve}:     {Next: StatusResolved, CallerChoosesEffect: true},
	{StatusUnderReview, ActionResolve}: {Next: StatusResolved, CallerChoosesEffect: true},

	{StatusPending, ActionDismiss}:     {Next: StatusDismissed, Effect: SideEffectNone},
	{StatusUnderReview, ActionDismiss}: {Next: StatusDismissed, Effect: SideEffectNone},

	{StatusPending, ActionBlock}:     {Next: StatusResolved, Effect: SideEffectSuspend},
	{StatusUnderReview, ActionBlock}: {Next: StatusResolved, Effect: SideEffectSuspend},
}

// Lookup returns the transition for the given status/action pair and
// whether the pair is legal.
func Lookup(status Status, action Action) (Transition, bool) {
	t, ok := transitions[transitionKey{status, action}]
	return t, ok
}
