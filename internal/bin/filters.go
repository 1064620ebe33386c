package bin

import "github.com/fabricpack/fabricpack/internal/model"

// OptionRankKind is a tagged variant over the eleven ranking objectives a
// candidate option can be sorted by. Lower ComputeRank is always better;
// each "high" variant is simply the negation of its "low" counterpart.
type OptionRankKind int

const (
	RankWastedArea OptionRankKind = iota
	RankMaxThickness
	RankMinThickness
	RankHiFabricCount
	RankLoFabricCount
	RankLoContrast
	RankHiContrast
	RankLoValueContrast
	RankHiValueContrast
	RankLoHueContrast
	RankHiHueContrast
)

// ComputeRank dispatches on kind and returns the rank value for opt; pd
// supplies the three precomputed pairwise distance lookups a FabricBin
// builds in UpdatePrecomputed.
func ComputeRank(kind OptionRankKind, opt model.PackingOption, pd pairDistances) float64 {
	switch kind {
	case RankWastedArea:
		return opt.WastedArea
	case RankMaxThickness:
		return -float64(opt.ShortestSide)
	case RankMinThickness:
		return float64(opt.ShortestSide)
	case RankHiFabricCount:
		return -float64(len(opt.EdgeSubset))
	case RankLoFabricCount:
		return float64(len(opt.EdgeSubset))
	case RankLoContrast:
		return pd.averagePairwise(opt.EdgeSubset, pd.colorDiff)
	case RankHiContrast:
		return -pd.averagePairwise(opt.EdgeSubset, pd.colorDiff)
	case RankLoValueContrast:
		return pd.averagePairwise(opt.EdgeSubset, pd.valueDiff)
	case RankHiValueContrast:
		return -pd.averagePairwise(opt.EdgeSubset, pd.valueDiff)
	case RankLoHueContrast:
		return pd.averagePairwise(opt.EdgeSubset, pd.hueDiff)
	case RankHiHueContrast:
		return -pd.averagePairwise(opt.EdgeSubset, pd.hueDiff)
	default:
		return opt.WastedArea
	}
}

// OptionFilterKind tags the optional filter applied to candidate options
// before ranking.
type OptionFilterKind int

const (
	OptionFilterNone OptionFilterKind = iota
	OptionFilterThickness
)

// OptionFilter is a tagged variant: {None} or {Thickness{min,max}}.
type OptionFilter struct {
	Kind         OptionFilterKind
	ThicknessMin int
	ThicknessMax int
}

// Validates reports whether a candidate thickness passes the filter.
func (f OptionFilter) Validates(thickness int) bool {
	switch f.Kind {
	case OptionFilterThickness:
		return thickness >= f.ThicknessMin && thickness <= f.ThicknessMax
	default:
		return true
	}
}

// BinFilterKind tags which bins are eligible for a solver round.
type BinFilterKind int

const (
	BinFilterNone BinFilterKind = iota
	BinFilterByFabric
	BinFilterUserSelected
)

// BinFilter is a tagged variant: {None} | {ById: mustHaveFabric} |
// {UserSelected: ids}.
type BinFilter struct {
	Kind             BinFilterKind
	MustHaveFabric   model.FabricID
	UserSelectedBins []int
}

// Validates reports whether bin b is eligible under the filter.
func (f BinFilter) Validates(b *FabricBin) bool {
	switch f.Kind {
	case BinFilterByFabric:
		for _, e := range b.ResolvedEdges() {
			if e.Fabric == f.MustHaveFabric {
				return true
			}
		}
		return false
	case BinFilterUserSelected:
		for _, id := range f.UserSelectedBins {
			if id == b.ID {
				return true
			}
		}
		return false
	default:
		return true
	}
}
