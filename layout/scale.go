package layout

import (
	"fmt"
	"math"
)

// Scale 由字宽之和与物理约束计算缩放系数和栏间距。
//
// sx 使整行恰好占满可用宽度（两栏时扣除名义栏间距），sy 只由约束决定。
// 开启宽高比保护时：sx < MinAspect*sy 报 ErrAspectRatio；sx > MaxAspect*sy
// 则截断到 MaxAspect*sy，多余宽度全部并入栏间距。
func Scale(totalCharWidth float64, hasGap bool, c Constraints) (Scaling, error) {
	if !(totalCharWidth > 0) || math.IsInf(totalCharWidth, 0) {
		return Scaling{}, fmt.Errorf("%w: %g", ErrDegenerateScale, totalCharWidth)
	}

	effective := c.AvailableWidth
	if hasGap {
		effective -= c.NominalGap
	}
	s := Scaling{
		Sx:       effective / totalCharWidth,
		Sy:       c.VerticalScale(),
		GapWidth: c.NominalGap,
	}
	if !finitePositive(s.Sx) || !finitePositive(s.Sy) {
		return Scaling{}, fmt.Errorf("%w: sx=%g sy=%g，约束无效", ErrDegenerateScale, s.Sx, s.Sy)
	}
	if !c.EnforceAspectGuard {
		return s, nil
	}

	if s.Sx < c.MinAspect*s.Sy {
		return Scaling{}, fmt.Errorf("%w: sx/sy = %.3f < %.3f，字形过窄", ErrAspectRatio, s.Sx/s.Sy, c.MinAspect)
	}
	if s.Sx > c.MaxAspect*s.Sy {
		s.Sx = c.MaxAspect * s.Sy
		s.GapWidth = c.AvailableWidth - totalCharWidth*s.Sx
		s.Clamped = true
	}
	return s, nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
