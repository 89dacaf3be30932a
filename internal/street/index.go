package street

import (
	"github.com/dhconnelly/rtreego"
)

// spatialIndex answers bounding-box queries over the corpus in O(log n)
// using an R-tree, instead of scanning every street.
type spatialIndex struct {
	rtree *rtreego.Rtree
}

// indexedStreet wraps a street for R-tree storage.
type indexedStreet struct {
	street *Street
}

// Bounds implements rtreego.Spatial over the street's bounding box.
func (s *indexedStreet) Bounds() rtreego.Rect {
	minLon, minLat := s.street.Line[0][0], s.street.Line[0][1]
	maxLon, maxLat := minLon, minLat
	for _, p := range s.street.Line[1:] {
		if p[0] < minLon {
			minLon = p[0]
		}
		if p[0] > maxLon {
			maxLon = p[0]
		}
		if p[1] < minLat {
			minLat = p[1]
		}
		if p[1] > maxLat {
			maxLat = p[1]
		}
	}

	point := rtreego.Point{minLon, minLat}

	// R-tree rectangles need non-zero extent; pad degenerate axes by
	// ~11 meters at the equator.
	const epsilon = 0.0001
	lonLength := maxLon - minLon
	latLength := maxLat - minLat
	if lonLength < epsilon {
		lonLength = epsilon
	}
	if latLength < epsilon {
		latLength = epsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{lonLength, latLength})
	return rect
}

// buildSpatialIndex indexes every street's bounding box.
func buildSpatialIndex(streets []*Street) *spatialIndex {
	rtree := rtreego.NewTree(2, 25, 50)
	for _, st := range streets {
		rtree.Insert(&indexedStreet{street: st})
	}
	return &spatialIndex{rtree: rtree}
}

// search returns the streets whose bounding boxes intersect the query box.
func (idx *spatialIndex) search(minLon, minLat, maxLon, maxLat float64) []*Street {
	lengths := []float64{maxLon - minLon, maxLat - minLat}
	const epsilon = 0.0001
	if lengths[0] <= 0 {
		lengths[0] = epsilon
	}
	if lengths[1] <= 0 {
		lengths[1] = epsilon
	}

	rect, err := rtreego.NewRect(rtreego.Point{minLon, minLat}, lengths)
	if err != nil {
		return nil
	}

	spatials := idx.rtree.SearchIntersect(rect)
	result := make([]*Street, 0, len(spatials))
	for _, sp := range spatials {
		result = append(result, sp.(*indexedStreet).street)
	}
	return result
}
