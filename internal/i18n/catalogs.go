package i18n

var catalogs = map[string]map[string]string{
	"en": {
		"common.error":                  "Something went wrong. Please try again.",
		"common.unauthorized":           "Your session has expired. Please log in again.",
		"common.forbidden":              "You do not have access to this page.",
		"common.notFound":               "The requested item was not found.",
		"common.unavailable":            "The service is temporarily unavailable. Please try again later.",
		"common.badRequest":             "The request could not be processed.",
		"hotelDetails.loadError":        "Failed to load hotel details.",
		"hotelDetails.notFound":         "Hotel not found.",
		"hotelDetails.unknownType":      "Unknown type",
		"hotelDetails.selectValidDates": "Please select valid check-in and check-out dates.",
		"hotelDetails.noRoomsAvailable": "No rooms available for the selected dates.",
		"explore.loadError":             "Failed to load hotels.",
		"booking.missingDates":          "Please select check-in and check-out dates before booking.",
		"booking.loginRequired":         "Please log in to make a reservation.",
		"booking.primaryAdult":          "Primary guest must be an adult.",
		"booking.requiredFields":        "Please fill in all required guest information (names for all guests, email and phone for the primary guest).",
		"booking.failed":                "Failed to create reservation. Please try again.",
		"booking.success":               "Reservation created successfully.",
		"booking.roomLoadError":         "Failed to load room details.",
		"reservationForm.missingDates":  "Select check-in and check-out dates.",
		"reservationForm.noRoom":        "Select a room.",
		"reservationForm.noRooms":       "No rooms are available.",
		"reservationForm.invalidRange":  "Check-out must be after check-in.",
		"reservationForm.loading":       "Checking availability...",
		"reservationForm.overCapacity":  "The selected room holds at most %d guests.",
		"postal.required":               "Please enter a postal code.",
		"postal.invalid":                "Please enter a valid postal/ZIP code.",
		"postal.invalidUS":              "US ZIP code must be in format: 12345 or 12345-6789.",
		"postal.invalidCA":              "Canadian postal code must be in format: A1A 1A1.",
		"postal.invalidPL":              "Polish postal code must be in format: 12-345.",
		"postal.invalidUK":              "UK postal code is invalid.",
		"auth.loginFailed":              "Invalid email or password.",
		"auth.registerFailed":           "Registration failed.",
		"auth.loggedOut":                "You have been logged out.",
		"password.resetSent":            "If the email exists, a reset link has been sent.",
		"password.changed":              "Password changed successfully.",
		"user.editProfile.success":      "Profile updated successfully.",
		"user.editProfile.error":        "Failed to update profile.",
		"user.editProfile.onlyGuests":   "Only guests can edit their profile here.",
		"admin.deleted":                 "Deleted successfully.",
		"roomTypes.standard":            "Standard",
		"roomTypes.deluxe":              "Deluxe",
		"roomTypes.suite":               "Suite",
		"roomTypes.single":              "Single",
		"roomTypes.double":              "Double",
		"roomTypes.twin":                "Twin",
		"roomTypes.family":              "Family",
		"roomTypes.executive":           "Executive",
		"roomTypes.presidential_suite":  "Presidential Suite",
		"amenities.CULTURE":             "Culture",
		"amenities.ENTERTAINMENT":       "Entertainment",
		"amenities.FOOD":                "Food",
		"amenities.HEALTH":              "Health",
		"amenities.PARKING":             "Parking",
		"amenities.POOL":                "Pool",
		"amenities.RECREATION":          "Recreation",
		"amenities.SHOPPING":            "Shopping",
		"amenities.SPORTS":              "Sports",
		"amenities.TRANSPORTATION":      "Transportation",
		"amenities.OTHER":               "Other",
	},
	"fr": {
		"common.error":                  "Une erreur est survenue. Veuillez réessayer.",
		"common.unauthorized":           "Votre session a expiré. Veuillez vous reconnecter.",
		"common.forbidden":              "Vous n'avez pas accès à cette page.",
		"common.notFound":               "L'élément demandé est introuvable.",
		"common.unavailable":            "Le service est temporairement indisponible.",
		"hotelDetails.loadError":        "Impossible de charger les détails de l'hôtel.",
		"hotelDetails.notFound":         "Hôtel introuvable.",
		"hotelDetails.unknownType":      "Type inconnu",
		"hotelDetails.selectValidDates": "Veuillez choisir des dates d'arrivée et de départ valides.",
		"hotelDetails.noRoomsAvailable": "Aucune chambre disponible pour ces dates.",
		"explore.loadError":             "Impossible de charger les hôtels.",
		"booking.missingDates":          "Veuillez choisir les dates d'arrivée et de départ avant de réserver.",
		"booking.loginRequired":         "Veuillez vous connecter pour réserver.",
		"booking.primaryAdult":          "Le client principal doit être un adulte.",
		"booking.requiredFields":        "Veuillez remplir toutes les informations requises (noms de tous les clients, e-mail et téléphone du client principal).",
		"booking.failed":                "La réservation a échoué. Veuillez réessayer.",
		"booking.success":               "Réservation créée avec succès.",
		"reservationForm.missingDates":  "Choisissez les dates d'arrivée et de départ.",
		"reservationForm.noRoom":        "Choisissez une chambre.",
		"reservationForm.noRooms":       "Aucune chambre disponible.",
		"reservationForm.invalidRange":  "Le départ doit suivre l'arrivée.",
		"reservationForm.loading":       "Vérification des disponibilités...",
		"reservationForm.overCapacity":  "La chambre choisie accueille au plus %d personnes.",
		"postal.required":               "Veuillez saisir un code postal.",
		"postal.invalid":                "Veuillez saisir un code postal valide.",
		"auth.loginFailed":              "E-mail ou mot de passe invalide.",
		"password.resetSent":            "Si l'adresse existe, un lien de réinitialisation a été envoyé.",
		"password.changed":              "Mot de passe modifié.",
		"user.editProfile.success":      "Profil mis à jour.",
		"user.editProfile.error":        "La mise à jour du profil a échoué.",
		"roomTypes.standard":            "Standard",
		"roomTypes.deluxe":              "Deluxe",
		"roomTypes.suite":               "Suite",
		"roomTypes.single":              "Simple",
		"roomTypes.double":              "Double",
		"roomTypes.twin":                "Lits jumeaux",
		"roomTypes.family":              "Familiale",
		"roomTypes.presidential_suite":  "Suite présidentielle",
		"amenities.FOOD":                "Restauration",
		"amenities.PARKING":             "Parking",
		"amenities.POOL":                "Piscine",
		"amenities.OTHER":               "Autre",
	},
	"es": {
		"common.error":                  "Algo salió mal. Inténtalo de nuevo.",
		"common.unauthorized":           "Tu sesión ha expirado. Inicia sesión de nuevo.",
		"common.forbidden":              "No tienes acceso a esta página.",
		"common.notFound":               "No se encontró el elemento solicitado.",
		"common.unavailable":            "El servicio no está disponible temporalmente.",
		"hotelDetails.loadError":        "No se pudieron cargar los detalles del hotel.",
		"hotelDetails.notFound":         "Hotel no encontrado.",
		"hotelDetails.unknownType":      "Tipo desconocido",
		"hotelDetails.selectValidDates": "Selecciona fechas de entrada y salida válidas.",
		"hotelDetails.noRoomsAvailable": "No hay habitaciones disponibles para esas fechas.",
		"explore.loadError":             "No se pudieron cargar los hoteles.",
		"booking.missingDates":          "Selecciona las fechas de entrada y salida antes de reservar.",
		"booking.loginRequired":         "Inicia sesión para hacer una reserva.",
		"booking.primaryAdult":          "El huésped principal debe ser adulto.",
		"booking.requiredFields":        "Completa la información requerida (nombres de todos los huéspedes, correo y teléfono del huésped principal).",
		"booking.failed":                "No se pudo crear la reserva. Inténtalo de nuevo.",
		"booking.success":               "Reserva creada con éxito.",
		"reservationForm.missingDates":  "Selecciona las fechas de entrada y salida.",
		"reservationForm.noRoom":        "Selecciona una habitación.",
		"reservationForm.noRooms":       "No hay habitaciones disponibles.",
		"reservationForm.invalidRange":  "La salida debe ser posterior a la entrada.",
		"reservationForm.loading":       "Comprobando disponibilidad...",
		"reservationForm.overCapacity":  "La habitación elegida admite como máximo %d huéspedes.",
		"postal.required":               "Introduce un código postal.",
		"postal.invalid":                "Introduce un código postal válido.",
		"auth.loginFailed":              "Correo o contraseña no válidos.",
		"password.resetSent":            "Si el correo existe, se ha enviado un enlace de restablecimiento.",
		"password.changed":              "Contraseña cambiada.",
		"user.editProfile.success":      "Perfil actualizado.",
		"user.editProfile.error":        "No se pudo actualizar el perfil.",
		"roomTypes.standard":            "Estándar",
		"roomTypes.deluxe":              "Deluxe",
		"roomTypes.suite":               "Suite",
		"roomTypes.single":              "Individual",
		"roomTypes.double":              "Doble",
		"roomTypes.family":              "Familiar",
		"roomTypes.presidential_suite":  "Suite presidencial",
		"amenities.FOOD":                "Comida",
		"amenities.POOL":                "Piscina",
		"amenities.OTHER":               "Otro",
	},
}
