package cluster

import "math"

// Проекция web mercator на единичный квадрат [0, 1] x [0, 1].
// Долгота растёт слева направо, широта - сверху вниз.

// lngX переводит долготу в мировую координату X
func lngX(lng float64) float64 {
	return lng/360 + 0.5
}

// latY переводит широту в мировую координату Y.
// Значения около полюсов прижимаются к краям квадрата.
func latY(lat float64) float64 {
	sin := math.Sin(lat * math.Pi / 180)
	y := 0.5 - 0.25*math.Log((1+sin)/(1-sin))/math.Pi
	if y < 0 {
		return 0
	}
	if y > 1 {
		return 1
	}
	return y
}

// xLng переводит мировую координату X обратно в долготу
func xLng(x float64) float64 {
	return (x - 0.5) * 360
}

// yLat переводит мировую координату Y обратно в широту
func yLat(y float64) float64 {
	y2 := (180 - y*360) * math.Pi / 180
	return 360*math.Atan(math.Exp(y2))/math.Pi - 90
}
