package orchestration

import "github.com/agbru/shorcalc/internal/numtheory"

// GetFindersToRun returns the finders selected by algo: every registered
// finder in name order for "all", otherwise the single named finder, or nil
// when the name is unknown.
func GetFindersToRun(algo string, factory numtheory.Factory) []numtheory.OrderFinder {
	if algo == "all" {
		names := factory.List()
		finders := make([]numtheory.OrderFinder, 0, len(names))
		for _, name := range names {
			if f, err := factory.Get(name); err == nil {
				finders = append(finders, f)
			}
		}
		return finders
	}
	if f, err := factory.Get(algo); err == nil {
		return []numtheory.OrderFinder{f}
	}
	return nil
}
