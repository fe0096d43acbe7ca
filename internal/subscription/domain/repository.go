package domain

import "context"

// Source supplies raw subscription records. Implementations never return a
// stored status; the lifecycle is derived by the classifier.
type Source interface {
	List(ctx context.Context) ([]Subscription, error)
}
