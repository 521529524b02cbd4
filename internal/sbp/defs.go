package sbp

// Standard 2nd order central.
var D2 = define(2, "D1_central_2",
	[]float64{-1. / 2, 0, 1. / 2},
	[][]float64{
		{-1., 1},
	},
	[]float64{1. / 2},
)

// Standard 4th order central.
var D4 = define(4, "D1_central_4",
	[]float64{1. / 12, -2. / 3, 0., 2. / 3, -1. / 12},
	[][]float64{
		{-24. / 17, 59. / 34, -4. / 17, -3. / 34, 0, 0},
		{-1. / 2, 0, 1. / 2, 0, 0, 0},
		{4. / 43, -59. / 86, 0, 59. / 86, -4. / 43, 0},
		{3. / 98, 0, -59. / 98, 0, 32. / 49, -4. / 49},
	},
	[]float64{17. / 48, 59. / 48, 43. / 48, 49. / 48},
)

// Standard 6th order central.
var D6 = define(6, "D1_central_6",
	[]float64{-1. / 60, 3. / 20, -3. / 4, 0, 3. / 4, -3. / 20, 1. / 60},
	[][]float64{
		{-21600. / 13649, 104009. / 54596, 30443. / 81894, -33311. / 27298, 16863. / 27298, -15025. / 163788, 0, 0, 0},
		{-104009. / 240260, 0, -311. / 72078, 20229. / 24026, -24337. / 48052, 36661. / 360390, 0, 0, 0},
		{-30443. / 162660, 311. / 32532, 0, -11155. / 16266, 41287. / 32532, -21999. / 54220, 0, 0, 0},
		{33311. / 107180, -20229. / 21436, 485. / 1398, 0, 4147. / 21436, 25427. / 321540, 72. / 5359, 0, 0},
		{-16863. / 78770, 24337. / 31508, -41287. / 47262, -4147. / 15754, 0, 342523. / 472620, -1296. / 7877, 144. / 7877, 0},
		{15025. / 525612, -36661. / 262806, 21999. / 87602, -25427. / 262806, -342523. / 525612, 0, 32400. / 43801, -6480. / 43801, 720. / 43801},
	},
	[]float64{13649. / 43200, 12013. / 8640, 2711. / 4320, 5359. / 4320, 7877. / 8640, 43801. / 43200},
)
