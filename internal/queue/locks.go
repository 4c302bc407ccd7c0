package queue

import "sync"

var (
	locksMu   sync.Mutex
	shopLocks = make(map[uint]*sync.Mutex)
)

// ShopLock возвращает мьютекс, сериализующий операции над очередью одного барбершопа.
// Конкурентные join/leave/next по одному магазину не должны одновременно читать и
// пересчитывать позиции, операции по разным магазинам друг другу не мешают.
func ShopLock(shopID uint) *sync.Mutex {
	locksMu.Lock()
	defer locksMu.Unlock()
	lock, ok := shopLocks[shopID]
	if !ok {
		lock = &sync.Mutex{}
		shopLocks[shopID] = lock
	}
	return lock
}
