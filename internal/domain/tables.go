package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysUser{},
	&SysOprLog{},
	// Shop
	&Product{},
	&Order{},
	&OrderItem{},
}
