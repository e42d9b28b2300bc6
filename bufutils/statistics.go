package bufutils

import "math"

// Statistics describes the occupancy of one or more element arenas. All counts
// are in elements, not bytes- the arena has no notion of element width.
type Statistics struct {
	ArenaCount       int
	AllocationCount  int
	CapacityElements int
	UsedElements     int
}

func (s *Statistics) Clear() {
	s.ArenaCount = 0
	s.AllocationCount = 0
	s.CapacityElements = 0
	s.UsedElements = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.ArenaCount += other.ArenaCount
	s.AllocationCount += other.AllocationCount
	s.CapacityElements += other.CapacityElements
	s.UsedElements += other.UsedElements
}

// DetailedStatistics adds pending (freed-but-unreclaimed) region information to
// Statistics, which requires a walk of the free list to collect.
type DetailedStatistics struct {
	Statistics
	PendingRegionCount   int
	PendingElements      int
	AllocationSizeMin    int
	AllocationSizeMax    int
	PendingRegionSizeMin int
	PendingRegionSizeMax int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.PendingRegionCount = 0
	s.PendingElements = 0
	s.AllocationSizeMin = math.MaxInt
	s.AllocationSizeMax = 0
	s.PendingRegionSizeMin = math.MaxInt
	s.PendingRegionSizeMax = 0
}

func (s *DetailedStatistics) AddAllocation(size int) {
	s.AllocationCount++
	s.UsedElements += size

	if size < s.AllocationSizeMin {
		s.AllocationSizeMin = size
	}

	if size > s.AllocationSizeMax {
		s.AllocationSizeMax = size
	}
}

func (s *DetailedStatistics) AddPendingRegion(size int) {
	s.PendingRegionCount++
	s.PendingElements += size

	if size < s.PendingRegionSizeMin {
		s.PendingRegionSizeMin = size
	}

	if size > s.PendingRegionSizeMax {
		s.PendingRegionSizeMax = size
	}
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)
	s.PendingRegionCount += other.PendingRegionCount
	s.PendingElements += other.PendingElements

	if other.AllocationSizeMin < s.AllocationSizeMin {
		s.AllocationSizeMin = other.AllocationSizeMin
	}

	if other.AllocationSizeMax > s.AllocationSizeMax {
		s.AllocationSizeMax = other.AllocationSizeMax
	}

	if other.PendingRegionSizeMin < s.PendingRegionSizeMin {
		s.PendingRegionSizeMin = other.PendingRegionSizeMin
	}

	if other.PendingRegionSizeMax > s.PendingRegionSizeMax {
		s.PendingRegionSizeMax = other.PendingRegionSizeMax
	}
}
