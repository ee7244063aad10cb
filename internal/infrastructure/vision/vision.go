package vision

import "roadscan/internal/domain/port"

// Проверка реализации интерфейса в обоих вариантах сборки
var _ port.DefectDetector = (*YOLODetector)(nil)
