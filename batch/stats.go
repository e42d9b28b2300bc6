package batch

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/quiver/bufutils"
)

// BuildStatsString returns a JSON blob describing this batch's memory usage.
// When detailed is true, the per-stream sections include a full block and
// pending-region map.
func (b *Batch) BuildStatsString(detailed bool) string {
	writer := jwriter.NewWriter()
	rootObj := writer.Object()

	rootObj.Name("Archetype").String(b.archetype.String())
	rootObj.Name("Objects").Int(b.manager.objectCount())

	var stats bufutils.DetailedStatistics
	stats.Clear()
	b.provider.addDetailedStatistics(&stats)

	totalObj := rootObj.Name("Total").Object()
	totalObj.Name("ArenaCount").Int(stats.ArenaCount)
	totalObj.Name("AllocationCount").Int(stats.AllocationCount)
	totalObj.Name("CapacityElements").Int(stats.CapacityElements)
	totalObj.Name("UsedElements").Int(stats.UsedElements)
	totalObj.Name("PendingRegionCount").Int(stats.PendingRegionCount)
	totalObj.Name("PendingElements").Int(stats.PendingElements)
	totalObj.End()

	streamArr := rootObj.Name("Streams").Array()
	for _, s := range b.provider.streams {
		streamObj := streamArr.Object()
		if detailed {
			s.printDetailedMap(streamObj)
		} else {
			s.jsonData(streamObj)
		}
		streamObj.End()
	}
	streamArr.End()

	rootObj.End()
	return string(writer.Bytes())
}
