package file

import (
	"github.com/jsphweid/arcdex/model"
)

func CreateChartNumMap(paths []string) model.ChartNumToAffPath {
	res := make(model.ChartNumToAffPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}
