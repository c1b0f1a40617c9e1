// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package info

import "context"

type Repository interface {
	Stats(ctx context.Context) (*Stats, error)
}
