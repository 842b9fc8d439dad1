package catalog

// Bright stars, J2000 (Yale Bright Star Catalog, IAU names).
var brightStars = []entry{
	{"Sirius", "06:45:08.92", "-16:42:58.0", -1.46},
	{"Canopus", "06:23:57.11", "-52:41:44.4", -0.74},
	{"Arcturus", "14:15:39.67", "+19:10:56.7", -0.05},
	{"Rigil Kentaurus", "14:39:36.49", "-60:50:02.4", -0.01},
	{"Vega", "18:36:56.34", "+38:47:01.3", 0.03},
	{"Capella", "05:16:41.36", "+45:59:52.8", 0.08},
	{"Rigel", "05:14:32.27", "-08:12:05.9", 0.13},
	{"Procyon", "07:39:18.12", "+05:13:30.0", 0.34},
	{"Achernar", "01:37:42.85", "-57:14:12.3", 0.46},
	{"Betelgeuse", "05:55:10.31", "+07:24:25.4", 0.50},
	{"Hadar", "14:03:49.41", "-60:22:22.9", 0.61},
	{"Altair", "19:50:47.00", "+08:52:06.0", 0.76},
	{"Acrux", "12:26:35.90", "-63:05:56.7", 0.76},
	{"Aldebaran", "04:35:55.24", "+16:30:33.5", 0.85},
	{"Antares", "16:29:24.46", "-26:25:55.2", 0.96},
	{"Spica", "13:25:11.58", "-11:09:40.8", 0.97},
	{"Pollux", "07:45:18.95", "+28:01:34.3", 1.14},
	{"Fomalhaut", "22:57:39.05", "-29:37:20.1", 1.16},
	{"Deneb", "20:41:25.92", "+45:16:49.2", 1.25},
	{"Mimosa", "12:47:43.27", "-59:41:19.5", 1.25},
	{"Regulus", "10:08:22.31", "+11:58:02.0", 1.35},
	{"Adhara", "06:58:37.55", "-28:58:19.5", 1.50},
	{"Castor", "07:34:35.86", "+31:53:17.8", 1.58},
	{"Shaula", "17:33:36.52", "-37:06:13.8", 1.63},
	{"Bellatrix", "05:25:07.86", "+06:20:58.9", 1.64},
	{"Elnath", "05:26:17.51", "+28:36:26.8", 1.65},
	{"Alnilam", "05:36:12.81", "-01:12:06.9", 1.69},
	{"Alnitak", "05:40:45.53", "-01:56:33.3", 1.77},
	{"Alioth", "12:54:01.75", "+55:57:35.4", 1.77},
	{"Dubhe", "11:03:43.67", "+61:45:03.7", 1.79},
	{"Mirfak", "03:24:19.37", "+49:51:40.2", 1.79},
	{"Alkaid", "13:47:32.44", "+49:18:47.8", 1.86},
	{"Menkalinan", "05:59:31.72", "+44:56:50.8", 1.90},
	{"Alhena", "06:37:42.71", "+16:23:57.4", 1.93},
	{"Peacock", "20:25:38.86", "-56:44:06.3", 1.94},
	{"Polaris", "02:31:49.09", "+89:15:50.8", 1.98},
	{"Mirzam", "06:22:41.99", "-17:57:21.3", 1.98},
	{"Alphard", "09:27:35.24", "-08:39:31.0", 1.98},
	{"Hamal", "02:07:10.41", "+23:27:44.7", 2.00},
	{"Nunki", "18:55:15.93", "-26:17:48.2", 2.05},
	{"Alpheratz", "00:08:23.26", "+29:05:25.6", 2.06},
	{"Kochab", "14:50:42.33", "+74:09:19.8", 2.08},
	{"Rasalhague", "17:34:56.07", "+12:33:36.1", 2.08},
	{"Algol", "03:08:10.13", "+40:57:20.3", 2.12},
	{"Denebola", "11:49:03.58", "+14:34:19.4", 2.13},
	{"Mizar", "13:23:55.54", "+54:55:31.3", 2.23},
	{"Schedar", "00:40:30.44", "+56:32:14.4", 2.24},
	{"Caph", "00:09:10.69", "+59:08:59.2", 2.28},
	{"Sigma Octantis", "21:08:46.86", "-88:57:23.4", 5.47},
}
